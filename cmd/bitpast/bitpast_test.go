package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmpim/bitpast"
)

func TestBuildConfigRejectsBadOptions(t *testing.T) {
	defer func(p, d string) { *paletteName, *ditherName = p, d }(*paletteName, *ditherName)

	*paletteName = "nonexistent"
	_, err := buildConfig()
	assert.ErrorIs(t, err, bitpast.ErrUnknownPalette)

	*paletteName = bitpast.DefaultPalette
	*ditherName = "nope"
	_, err = buildConfig()
	assert.ErrorIs(t, err, bitpast.ErrInvalidKernel)

	*ditherName = bitpast.Buckels.Name
	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, bitpast.DefaultPalette, cfg.Palette)
}

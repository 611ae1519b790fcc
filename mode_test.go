package bitpast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeLGR, ModeDLGR, ModeHGR, ModeDHGR} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.Equal(t, "."+m.String(), m.Descriptor().Ext)
	}

	_, err := ParseMode("shr")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "unknown", Mode(7).String())
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("Blue-Orange")
	require.NoError(t, err)
	assert.Equal(t, ProfileBlueOrange, p)
	assert.Equal(t, "blue-orange", p.String())

	_, err = ParseProfile("green")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestModeCandidates(t *testing.T) {
	assert.Nil(t, ModeLGR.Candidates(false, ProfileAuto))
	assert.Nil(t, ModeDHGR.Candidates(false, ProfileBlueOrange))
	assert.Equal(t, []uint8{0, 3, 6, 9, 12, 15}, ModeHGR.Candidates(false, ProfileAuto))
	assert.Equal(t, []uint8{0, 3, 12, 15}, ModeHGR.Candidates(false, ProfileVioletGreen))
	assert.Equal(t, []uint8{0, 6, 9, 15}, ModeHGR.Candidates(false, ProfileBlueOrange))
	assert.Equal(t, []uint8{0, 15}, ModeDLGR.Candidates(true, ProfileAuto))
}

func TestEncodedBuffer(t *testing.T) {
	buf := newBuffer(ModeDHGR)
	buf.Segment(BankAux).Data[0] = 1
	buf.Segment(BankMain).Data[0] = 2

	data := buf.Bytes()
	require.Len(t, data, 16384)
	assert.Equal(t, byte(1), data[0])
	assert.Equal(t, byte(2), data[8192])

	var w bytes.Buffer
	n, err := buf.WriteTo(&w)
	require.NoError(t, err)
	assert.Equal(t, int64(16384), n)
	assert.Equal(t, data, w.Bytes())

	assert.Nil(t, newBuffer(ModeLGR).Segment(BankAux))
	assert.Equal(t, "aux", BankAux.String())
}

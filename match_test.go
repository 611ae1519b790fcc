package bitpast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestIndexExact(t *testing.T) {
	p, err := LookupPalette("tohgr")
	require.NoError(t, err)

	for i, c := range p {
		want := uint8(i)
		// tohgr carries the same gray twice; the lower slot wins.
		if i == Gray2 {
			want = Gray1
		}
		assert.Equal(t, want, NearestIndex(p, c), "index %d", i)
	}
}

func TestNearestIndexWeighting(t *testing.T) {
	var p Palette
	p[1] = RGB{100, 0, 0}
	p[2] = RGB{0, 100, 0}
	for i := 3; i < PaletteSize; i++ {
		p[i] = RGB{255, 255, 255}
	}

	assert.Equal(t, uint8(2), NearestIndex(p, RGB{0, 80, 0}))
	assert.Equal(t, uint8(1), NearestIndex(p, RGB{80, 0, 0}))
	assert.Equal(t, uint8(0), NearestIndex(p, RGB{10, 10, 10}))

	// Equally far in plain RGB; the red error costs less luma.
	p[1] = RGB{50, 100, 0}
	p[2] = RGB{100, 50, 0}
	assert.Equal(t, uint8(2), NearestIndex(p, RGB{50, 50, 0}))
	assert.Equal(t, uint8(1), NewMatcher(p, MetricRGB, nil).Nearest(RGB{50, 50, 0}))
}

func TestMatcherTiesResolveLow(t *testing.T) {
	var p Palette
	for i := range p {
		p[i] = RGB{50, 50, 50}
	}

	for _, metric := range []Metric{MetricLuma, MetricRGB, MetricLab, MetricCIEDE2000} {
		m := NewMatcher(p, metric, []uint8{9, 4, 12})
		assert.Equal(t, uint8(4), m.Nearest(RGB{200, 10, 10}), metric.String())
	}
}

func TestMatcherCandidates(t *testing.T) {
	p, err := LookupPalette(DefaultPalette)
	require.NoError(t, err)

	m := NewMatcher(p, MetricLuma, []uint8{15, 0, 15})
	assert.Equal(t, []uint8{0, 15}, m.Candidates())

	assert.Len(t, NewMatcher(p, MetricLuma, nil).Candidates(), PaletteSize)

	hgr := NewMatcher(p, MetricLuma, ModeHGR.Candidates(false, ProfileAuto))
	g := noiseGrid(64, 64, 7)
	for _, c := range g.Pix {
		assert.Contains(t, hgrIndices, hgr.Nearest(c))
	}
}

func TestMatcherMetrics(t *testing.T) {
	p, err := LookupPalette("kegs32")
	require.NoError(t, err)

	for _, metric := range []Metric{MetricLuma, MetricRGB, MetricLab, MetricCIEDE2000} {
		m := NewMatcher(p, metric, nil)
		for i, c := range p {
			assert.Equal(t, uint8(i), m.Nearest(c), "%s index %d", metric, i)
		}
	}
}

func TestParseMetric(t *testing.T) {
	for _, name := range []string{"luma", "rgb", "lab", "ciede2000"} {
		m, err := ParseMetric(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	_, err := ParseMetric("hsv")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

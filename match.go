package bitpast

import (
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Metric selects how the distance between two colors is measured.
type Metric int

// Supported distance metrics.
const (
	// MetricLuma is Euclidean RGB distance with each channel weighted by its
	// contribution to luma.
	MetricLuma Metric = iota
	// MetricRGB is plain Euclidean RGB distance.
	MetricRGB
	// MetricLab is Euclidean distance in CIE L*a*b*.
	MetricLab
	// MetricCIEDE2000 is the CIEDE2000 color difference.
	MetricCIEDE2000
)

var metricNames = map[string]Metric{
	"luma":      MetricLuma,
	"rgb":       MetricRGB,
	"lab":       MetricLab,
	"ciede2000": MetricCIEDE2000,
}

// ParseMetric resolves a metric name.
func ParseMetric(name string) (Metric, error) {
	m, ok := metricNames[strings.ToLower(name)]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidConfig, "unknown metric %q", name)
	}
	return m, nil
}

func (m Metric) String() string {
	for k, v := range metricNames {
		if v == m {
			return k
		}
	}
	return "unknown"
}

const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// NearestIndex returns the index of the palette entry closest to c under the
// luma weighted metric. Ties resolve to the lowest index.
func NearestIndex(p Palette, c RGB) uint8 {
	best := uint8(0)
	bestDist := lumaDistance(p[0], c)
	for i := 1; i < PaletteSize; i++ {
		if d := lumaDistance(p[i], c); d < bestDist {
			best, bestDist = uint8(i), d
		}
	}
	return best
}

func lumaDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return lumaR*dr*dr + lumaG*dg*dg + lumaB*db*db
}

func rgbDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Matcher finds the nearest palette entry for a color. It may be restricted
// to a subset of the palette for modes that cannot display every entry. A
// Matcher holds no mutable state and is safe for concurrent use.
type Matcher struct {
	palette    Palette
	metric     Metric
	candidates []uint8
	lab        [PaletteSize]colorful.Color
}

// NewMatcher returns a matcher over the given candidate indices. A nil or
// empty candidate list means all sixteen entries.
func NewMatcher(p Palette, metric Metric, candidates []uint8) *Matcher {
	m := &Matcher{
		palette: p,
		metric:  metric,
	}

	if len(candidates) == 0 {
		candidates = allIndices
	}
	m.candidates = lo.Uniq(candidates)
	sort.Slice(m.candidates, func(i, j int) bool {
		return m.candidates[i] < m.candidates[j]
	})

	for i, c := range p {
		m.lab[i] = toColorful(c)
	}

	return m
}

var allIndices = []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// Palette returns the palette the matcher was built with.
func (m *Matcher) Palette() Palette {
	return m.palette
}

// Candidates returns the palette indices the matcher may return.
func (m *Matcher) Candidates() []uint8 {
	return append([]uint8(nil), m.candidates...)
}

// Nearest returns the candidate index closest to c. Candidates are visited in
// ascending order so ties resolve to the lowest index.
func (m *Matcher) Nearest(c RGB) uint8 {
	var src colorful.Color
	if m.metric == MetricLab || m.metric == MetricCIEDE2000 {
		src = toColorful(c)
	}

	best := m.candidates[0]
	bestDist := -1.0
	for _, i := range m.candidates {
		var d float64
		switch m.metric {
		case MetricRGB:
			d = rgbDistance(m.palette[i], c)
		case MetricLab:
			d = src.DistanceLab(m.lab[i])
		case MetricCIEDE2000:
			d = src.DistanceCIEDE2000(m.lab[i])
		default:
			d = lumaDistance(m.palette[i], c)
		}

		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

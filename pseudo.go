package bitpast

import (
	"image/color"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
)

// BuildPseudoPalette adapts base to the dominant colors of g. At most
// maxEntries colors are sampled with a median cut; each slot of base other
// than black and white is then pulled halfway toward the sampled color
// nearest to it. Slot order is kept, so every index still means the same
// hardware color. The result depends only on g, base and maxEntries.
func BuildPseudoPalette(g *PixelGrid, base Palette, maxEntries int) (Palette, error) {
	if err := g.validate(); err != nil {
		return Palette{}, err
	}
	if maxEntries <= 0 || maxEntries > 256 {
		return Palette{}, errors.Wrapf(ErrInvalidConfig, "pseudo palette sample size %d out of range 1-256", maxEntries)
	}

	q := quantize.MedianCutQuantizer{AddTransparent: false}
	sampled := q.Quantize(make(color.Palette, 0, maxEntries), g.Image())
	if len(sampled) == 0 {
		return base, nil
	}

	samples := make([]RGB, 0, len(sampled))
	for _, c := range sampled {
		samples = append(samples, RGBModel.Convert(c).(RGB))
	}
	sort.Slice(samples, func(i, j int) bool {
		a, b := samples[i], samples[j]
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})

	out := base
	for i := Black + 1; i < White; i++ {
		slot := base[i]
		nearest := samples[0]
		best := lumaDistance(slot, nearest)
		for _, s := range samples[1:] {
			if d := lumaDistance(slot, s); d < best {
				nearest, best = s, d
			}
		}
		out[i] = RGB{
			midpoint(slot.R, nearest.R),
			midpoint(slot.G, nearest.G),
			midpoint(slot.B, nearest.B),
		}
	}
	out[Black] = RGB{}
	out[White] = RGB{255, 255, 255}

	return out, nil
}

func midpoint(a, b uint8) uint8 {
	return uint8((int(a) + int(b) + 1) / 2)
}

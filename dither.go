package bitpast

import (
	"image/color"
	"math"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/pkg/errors"
)

// Strategy selects how colors are reduced to the palette.
type Strategy int

// Dithering strategies.
const (
	// StrategyNone is a plain nearest match with no error propagation.
	StrategyNone Strategy = iota
	// StrategyDiffusion propagates quantization error with a Kernel.
	StrategyDiffusion
	// StrategyOrdered applies a 4x4 Bayer threshold map.
	StrategyOrdered
)

// DefaultCrossHatchAmount is the sample offset applied on cross-hatch lines.
const DefaultCrossHatchAmount = 32

// Visit describes one step of the dither scan.
type Visit struct {
	X, Y int
	// Dir is +1 for a left to right row and -1 for a right to left row.
	Dir   int
	Index uint8
	// Carried is the error that had accumulated at this pixel before it was
	// matched.
	Carried [3]float64
}

// DitherOptions configures a dither pass.
type DitherOptions struct {
	Strategy   Strategy
	Kernel     Kernel
	Serpentine bool

	// CrossHatch is the period of the cross-hatch lattice; 0 disables it.
	CrossHatch       int
	CrossHatchAmount int

	// Bleed reduces diffused error by this many percent (0-99).
	Bleed int

	// Mono selects black/white output. With StrategyNone, samples whose luma
	// is at least Threshold become white.
	Mono      bool
	Threshold int

	// Trace, if set, is called for every pixel in scan order.
	Trace func(Visit)
}

// accumulator carries quantization error for the current row and the two
// rows below it.
type accumulator struct {
	width int
	rows  [3][][3]float64
}

func newAccumulator(width int) *accumulator {
	a := &accumulator{width: width}
	for i := range a.rows {
		a.rows[i] = make([][3]float64, width)
	}
	return a
}

func (a *accumulator) at(x, y int) [3]float64 {
	return a.rows[y%3][x]
}

func (a *accumulator) add(x, y int, e [3]float64, scale float64) {
	row := a.rows[y%3]
	row[x][0] += e[0] * scale
	row[x][1] += e[1] * scale
	row[x][2] += e[2] * scale
}

// retire clears row y so the slot can be reused for row y+3.
func (a *accumulator) retire(y int) {
	row := a.rows[y%3]
	for i := range row {
		row[i] = [3]float64{}
	}
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// crossHatch returns the sample offset for (x, y). Pixels on the (x+y)
// lattice are lightened, pixels on the (x-y) lattice darkened; where the two
// meet they cancel.
func crossHatch(x, y, period, amount int) float64 {
	if period <= 0 {
		return 0
	}

	var off int
	if (x+y)%period == 0 {
		off += amount
	}
	if ((x-y)%period+period)%period == 0 {
		off -= amount
	}
	return float64(off)
}

// Dither reduces src to palette indices chosen by m. The returned grid has
// the same dimensions as src.
func Dither(src *PixelGrid, m *Matcher, opts DitherOptions) (*IndexGrid, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	if opts.Bleed < 0 || opts.Bleed > 99 {
		return nil, errors.Wrapf(ErrInvalidConfig, "bleed %d out of range 0-99", opts.Bleed)
	}

	switch opts.Strategy {
	case StrategyOrdered:
		return ditherOrdered(src, m, opts)
	case StrategyDiffusion:
		if err := opts.Kernel.validate(); err != nil {
			return nil, err
		}
	}

	out := NewIndexGrid(src.Width, src.Height)
	acc := newAccumulator(src.Width)
	scan := newScanner(src.Width, src.Height, opts.Serpentine)
	palette := m.Palette()
	diffuse := opts.Strategy == StrategyDiffusion
	threshold := opts.Mono && opts.Strategy == StrategyNone
	scale := float64(100-opts.Bleed) / 100 / float64(opts.Kernel.Divisor)

	for {
		x, y, rowEnd, ok := scan.next()
		if !ok {
			break
		}

		carried := acc.at(x, y)
		s := src.At(x, y)
		hatch := crossHatch(x, y, opts.CrossHatch, opts.CrossHatchAmount)
		sample := RGB{
			clampChannel(float64(s.R) + carried[0] + hatch),
			clampChannel(float64(s.G) + carried[1] + hatch),
			clampChannel(float64(s.B) + carried[2] + hatch),
		}

		var idx uint8
		if threshold {
			idx = Black
			if sample.Luma() >= float64(opts.Threshold) {
				idx = White
			}
		} else {
			idx = m.Nearest(sample)
		}
		out.Set(x, y, idx)

		if opts.Trace != nil {
			opts.Trace(Visit{X: x, Y: y, Dir: scan.dir, Index: idx, Carried: carried})
		}

		if diffuse {
			pc := palette[idx]
			e := [3]float64{
				float64(sample.R) - float64(pc.R),
				float64(sample.G) - float64(pc.G),
				float64(sample.B) - float64(pc.B),
			}
			for _, t := range opts.Kernel.Taps {
				nx, ny := x+t.DX*scan.dir, y+t.DY
				if nx < 0 || nx >= src.Width || ny >= src.Height {
					continue
				}
				acc.add(nx, ny, e, float64(t.Weight)*scale)
			}
		}

		if rowEnd {
			acc.retire(y)
		}
	}

	return out, nil
}

// ditherOrdered maps src through a Bayer matrix. Duplicate palette colors
// are collapsed onto their lowest index first.
func ditherOrdered(src *PixelGrid, m *Matcher, opts DitherOptions) (*IndexGrid, error) {
	palette := m.Palette()

	var colors []color.Color
	var indices []uint8
	seen := make(map[RGB]bool)
	for _, i := range m.Candidates() {
		if seen[palette[i]] {
			continue
		}
		seen[palette[i]] = true
		colors = append(colors, palette[i])
		indices = append(indices, i)
	}

	out := NewIndexGrid(src.Width, src.Height)
	if len(colors) == 1 {
		for i := range out.Pix {
			out.Pix[i] = indices[0]
		}
		return out, nil
	}

	d := dither.NewDitherer(colors)
	if d == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "ordered dither rejected the palette")
	}
	d.Mapper = dither.Bayer(4, 4, 1.0)
	d.SingleThreaded = true

	pm := d.DitherPaletted(src.Image())
	b := pm.Bounds()
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			idx := indices[pm.ColorIndexAt(b.Min.X+x, b.Min.Y+y)]
			out.Set(x, y, idx)
			if opts.Trace != nil {
				opts.Trace(Visit{X: x, Y: y, Dir: 1, Index: idx})
			}
		}
	}

	return out, nil
}

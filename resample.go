package bitpast

import "github.com/pkg/errors"

// axisScale describes how one source axis maps onto a destination axis.
type axisScale struct {
	factor int
	// up is true when each source cell is replicated factor times.
	up bool
}

func scaleAxis(src, dst int) (axisScale, bool) {
	if src <= 0 || dst <= 0 {
		return axisScale{}, false
	}
	if dst%src == 0 {
		return axisScale{factor: dst / src, up: true}, true
	}
	if src%dst == 0 {
		return axisScale{factor: src / dst}, true
	}
	return axisScale{}, false
}

// span returns the half-open source range feeding destination cell i.
func (a axisScale) span(i int) (int, int) {
	if a.up {
		return i / a.factor, i/a.factor + 1
	}
	return i * a.factor, (i + 1) * a.factor
}

// CheckResample reports whether a width x height grid can be resampled to
// dstWidth x dstHeight. Each axis must be an integer multiple or an integer
// divisor of the destination.
func CheckResample(width, height, dstWidth, dstHeight int) error {
	if _, ok := scaleAxis(width, dstWidth); !ok {
		return errors.Wrapf(ErrUnsupportedDimensions, "width %d does not scale to %d", width, dstWidth)
	}
	if _, ok := scaleAxis(height, dstHeight); !ok {
		return errors.Wrapf(ErrUnsupportedDimensions, "height %d does not scale to %d", height, dstHeight)
	}
	return nil
}

// Resample scales g to width x height. Enlarged axes replicate cells;
// reduced axes take the most common index in each block, ties going to the
// lowest index.
func Resample(g *IndexGrid, width, height int) (*IndexGrid, error) {
	if err := CheckResample(g.Width, g.Height, width, height); err != nil {
		return nil, err
	}
	if g.Width == width && g.Height == height {
		return g, nil
	}

	sx, _ := scaleAxis(g.Width, width)
	sy, _ := scaleAxis(g.Height, height)

	out := NewIndexGrid(width, height)
	for y := 0; y < height; y++ {
		y0, y1 := sy.span(y)
		for x := 0; x < width; x++ {
			x0, x1 := sx.span(x)
			out.Set(x, y, g.majority(x0, y0, x1, y1))
		}
	}

	return out, nil
}

// majority returns the most common index in the rectangle [x0,x1)x[y0,y1).
func (g *IndexGrid) majority(x0, y0, x1, y1 int) uint8 {
	if x1-x0 == 1 && y1-y0 == 1 {
		return g.At(x0, y0)
	}

	var counts [PaletteSize]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			counts[g.At(x, y)&0x0f]++
		}
	}
	return mostCommon(counts)
}

func mostCommon(counts [PaletteSize]int) uint8 {
	best := 0
	for i := 1; i < PaletteSize; i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return uint8(best)
}

package bitpast

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// PixelGrid is a rectangular grid of source samples in row-major order.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewPixelGrid returns a black grid of the given size.
func NewPixelGrid(width, height int) *PixelGrid {
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// GridFromImage copies an image into a PixelGrid. Alpha is discarded.
func GridFromImage(img image.Image) *PixelGrid {
	b := img.Bounds()
	g := NewPixelGrid(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Pix[(y-b.Min.Y)*g.Width+(x-b.Min.X)] = RGBModel.Convert(img.At(x, y)).(RGB)
		}
	}
	return g
}

// At returns the sample at (x, y).
func (g *PixelGrid) At(x, y int) RGB {
	return g.Pix[y*g.Width+x]
}

// Set stores the sample at (x, y).
func (g *PixelGrid) Set(x, y int, c RGB) {
	g.Pix[y*g.Width+x] = c
}

// Image returns the grid as an image.Image.
func (g *PixelGrid) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, c := range g.Pix {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = 0xff
	}
	return img
}

func (g *PixelGrid) validate() error {
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return errors.Wrap(ErrUnsupportedDimensions, "empty source grid")
	}
	if len(g.Pix) != g.Width*g.Height {
		return errors.Wrapf(ErrUnsupportedDimensions, "grid holds %d samples, want %dx%d",
			len(g.Pix), g.Width, g.Height)
	}
	return nil
}

// IndexGrid is a rectangular grid of palette indices in row-major order.
type IndexGrid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewIndexGrid returns a grid of the given size filled with index 0.
func NewIndexGrid(width, height int) *IndexGrid {
	return &IndexGrid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the index at (x, y).
func (g *IndexGrid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// Set stores the index at (x, y).
func (g *IndexGrid) Set(x, y int, i uint8) {
	g.Pix[y*g.Width+x] = i
}

// Paletted renders the grid through a palette.
func (g *IndexGrid) Paletted(p Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.Width, g.Height), p.Colors())
	copy(img.Pix, g.Pix)
	return img
}

// Pixels renders the grid back into samples through a palette.
func (g *IndexGrid) Pixels(p Palette) *PixelGrid {
	out := NewPixelGrid(g.Width, g.Height)
	for i, idx := range g.Pix {
		out.Pix[i] = p[idx&0x0f]
	}
	return out
}

var _ color.Color = RGB{}

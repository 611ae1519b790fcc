// Package source decodes image files into pixel grids for conversion.
package source

import (
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp" // register BMP

	"github.com/tmpim/bitpast"
)

// Fit selects how a decoded image is brought to the working size.
type Fit int

// Fit modes.
const (
	// FitNone keeps the image as decoded.
	FitNone Fit = iota
	// FitStretch resizes to the working size, ignoring aspect ratio.
	FitStretch
	// FitCrop scales to cover the working size and crops the centre.
	FitCrop
)

// Decoder reads images from a filesystem.
type Decoder struct {
	fs            afero.Fs
	fit           Fit
	width, height int
}

// New returns a decoder reading from fs that fits images to width x height.
// width and height are ignored with FitNone.
func New(fs afero.Fs, fit Fit, width, height int) *Decoder {
	return &Decoder{
		fs:     fs,
		fit:    fit,
		width:  width,
		height: height,
	}
}

// DecodeConfig returns the dimensions and format of the image at path
// without decoding its pixels.
func (d *Decoder) DecodeConfig(path string) (image.Config, string, error) {
	f, err := d.fs.Open(path)
	if err != nil {
		return image.Config{}, "", errors.Wrapf(bitpast.ErrDecode, "%s: %v", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", errors.Wrapf(bitpast.ErrDecode, "%s: %v", path, err)
	}
	return cfg, format, nil
}

// Decode reads the image at path and returns it as a grid.
func (d *Decoder) Decode(path string) (*bitpast.PixelGrid, error) {
	cfg, _, err := d.DecodeConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, errors.Wrapf(bitpast.ErrDecode, "%s: empty image", path)
	}

	f, err := d.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(bitpast.ErrDecode, "%s: %v", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(bitpast.ErrDecode, "%s: %v", path, err)
	}

	return bitpast.GridFromImage(d.fitImage(img)), nil
}

func (d *Decoder) fitImage(img image.Image) image.Image {
	if d.width <= 0 || d.height <= 0 {
		return img
	}

	b := img.Bounds()
	if b.Dx() == d.width && b.Dy() == d.height {
		return img
	}

	switch d.fit {
	case FitStretch:
		out := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
		gift.Resize(d.width, d.height, gift.LanczosResampling).Draw(out, img, &gift.Options{
			Parallelization: true,
		})
		return out
	case FitCrop:
		return imaging.Fill(img, d.width, d.height, imaging.Center, imaging.Lanczos)
	}
	return img
}

// Grid converts an in-memory image, applying the same fit as Decode.
func (d *Decoder) Grid(img image.Image) *bitpast.PixelGrid {
	return bitpast.GridFromImage(d.fitImage(img))
}

package bitpast

import (
	"context"

	"github.com/pkg/errors"
)

// EncodeOptions controls mode specific packing.
type EncodeOptions struct {
	// Mono writes one bit per display pixel in HGR and DHGR.
	Mono    bool
	Profile Profile
}

// Encode packs g into the memory layout of m. g is first resampled to the
// display size of m. The result depends only on g, m and opts.
func Encode(ctx context.Context, m Mode, g *IndexGrid, opts EncodeOptions) (*EncodedBuffer, error) {
	if !m.valid() {
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown mode %d", int(m))
	}

	d := m.Descriptor()
	g, err := Resample(g, d.Width, d.Height)
	if err != nil {
		return nil, err
	}

	switch m {
	case ModeLGR:
		return encodeLores(ctx, g)
	case ModeDLGR:
		return encodeDoubleLores(ctx, g)
	case ModeHGR:
		return encodeHires(ctx, g, opts.Mono, opts.Profile)
	default:
		return encodeDoubleHires(ctx, g, opts.Mono)
	}
}

package bitpast

import "github.com/pkg/errors"

// Errors returned by the conversion pipeline. They are wrapped with context
// by the functions that return them, so compare with errors.Is.
var (
	ErrDecode                = errors.New("bitpast: cannot decode source image")
	ErrUnknownPalette        = errors.New("bitpast: unknown palette")
	ErrInvalidKernel         = errors.New("bitpast: invalid dither kernel")
	ErrUnsupportedDimensions = errors.New("bitpast: unsupported dimensions")
	ErrIO                    = errors.New("bitpast: output failed")
	ErrInvalidConfig         = errors.New("bitpast: invalid configuration")
)

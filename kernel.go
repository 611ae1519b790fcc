package bitpast

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Tap is one destination of diffused error, relative to the current pixel
// when scanning left to right.
type Tap struct {
	DX, DY int
	Weight int
}

// Kernel is an error diffusion matrix. Error sent to a tap is
// error * Weight / Divisor. Weights sum to Divisor, except for the built in
// Atkinson kernel which diffuses only six eighths of the error.
type Kernel struct {
	Name    string
	ID      int
	Taps    []Tap
	Divisor int
}

// Sum returns the sum of the tap weights.
func (k Kernel) Sum() int {
	return lo.SumBy(k.Taps, func(t Tap) int { return t.Weight })
}

// Rows returns how many rows below the current one the kernel reaches.
func (k Kernel) Rows() int {
	return lo.Max(lo.Map(k.Taps, func(t Tap, _ int) int { return t.DY }))
}

func (k Kernel) validate() error {
	if k.Divisor <= 0 {
		return errors.Wrapf(ErrInvalidKernel, "%s: divisor %d is not positive", k.Name, k.Divisor)
	}
	if len(k.Taps) == 0 {
		return errors.Wrapf(ErrInvalidKernel, "%s: no taps", k.Name)
	}
	for _, t := range k.Taps {
		if t.Weight < 0 {
			return errors.Wrapf(ErrInvalidKernel, "%s: negative weight at (%d,%d)", k.Name, t.DX, t.DY)
		}
		if t.DY < 0 || t.DY > 2 || (t.DY == 0 && t.DX <= 0) {
			return errors.Wrapf(ErrInvalidKernel, "%s: tap (%d,%d) points at a visited pixel", k.Name, t.DX, t.DY)
		}
	}
	return nil
}

// Built in kernels. Atkinson deliberately diffuses only six eighths of the
// error; every other kernel's weights sum to its divisor.
var (
	FloydSteinberg = Kernel{Name: "floyd-steinberg", ID: 1, Divisor: 16, Taps: []Tap{
		{1, 0, 7},
		{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
	}}
	Jarvis = Kernel{Name: "jarvis", ID: 2, Divisor: 48, Taps: []Tap{
		{1, 0, 7}, {2, 0, 5},
		{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
		{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
	}}
	Stucki = Kernel{Name: "stucki", ID: 3, Divisor: 42, Taps: []Tap{
		{1, 0, 8}, {2, 0, 4},
		{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
		{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
	}}
	Atkinson = Kernel{Name: "atkinson", ID: 4, Divisor: 8, Taps: []Tap{
		{1, 0, 1}, {2, 0, 1},
		{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
		{0, 2, 1},
	}}
	Burkes = Kernel{Name: "burkes", ID: 5, Divisor: 32, Taps: []Tap{
		{1, 0, 8}, {2, 0, 4},
		{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
	}}
	Sierra = Kernel{Name: "sierra", ID: 6, Divisor: 32, Taps: []Tap{
		{1, 0, 5}, {2, 0, 3},
		{-2, 1, 2}, {-1, 1, 4}, {0, 1, 5}, {1, 1, 4}, {2, 1, 2},
		{-1, 2, 2}, {0, 2, 3}, {1, 2, 2},
	}}
	SierraTwoRow = Kernel{Name: "sierra-two-row", ID: 7, Divisor: 16, Taps: []Tap{
		{1, 0, 4}, {2, 0, 3},
		{-2, 1, 1}, {-1, 1, 2}, {0, 1, 3}, {1, 1, 2}, {2, 1, 1},
	}}
	SierraLite = Kernel{Name: "sierra-lite", ID: 8, Divisor: 4, Taps: []Tap{
		{1, 0, 2},
		{-1, 1, 1}, {0, 1, 1},
	}}
	// Buckels is the classic kernel of the bmp2dhr converter.
	Buckels = Kernel{Name: "buckels", ID: 9, Divisor: 8, Taps: []Tap{
		{1, 0, 2}, {2, 0, 1},
		{-1, 1, 1}, {0, 1, 2}, {1, 1, 1},
		{0, 2, 1},
	}}
)

var kernels = []Kernel{
	FloydSteinberg, Jarvis, Stucki, Atkinson, Burkes,
	Sierra, SierraTwoRow, SierraLite, Buckels,
}

// Kernels returns the built in kernels ordered by ID.
func Kernels() []Kernel {
	out := append([]Kernel(nil), kernels...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LookupKernel resolves a built in kernel by name or by its numeric ID.
func LookupKernel(name string) (Kernel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range kernels {
		if k.Name == name || strconv.Itoa(k.ID) == name {
			return k, nil
		}
	}

	switch name {
	case "classic":
		return Buckels, nil
	case "fs", "floyd":
		return FloydSteinberg, nil
	}

	return Kernel{}, errors.Wrapf(ErrInvalidKernel, "unknown kernel %q", name)
}

// CustomKernelID is the numeric ID reserved for user supplied matrices.
const CustomKernelID = 10

// NewCustomKernel builds a kernel from a 3 row matrix. The current pixel is
// the centre column of the first row; entries at or left of it on that row
// must be zero. The weights must sum to the divisor.
func NewCustomKernel(matrix [3][]int, divisor int) (Kernel, error) {
	width := len(matrix[0])
	if width == 0 || width%2 == 0 {
		return Kernel{}, errors.Wrapf(ErrInvalidKernel, "matrix width %d must be odd", width)
	}

	k := Kernel{Name: "custom", ID: CustomKernelID, Divisor: divisor}
	centre := width / 2

	for dy, row := range matrix {
		if len(row) != width {
			return Kernel{}, errors.Wrapf(ErrInvalidKernel, "row %d has %d entries, want %d", dy, len(row), width)
		}
		for x, w := range row {
			if w == 0 {
				continue
			}
			dx := x - centre
			if dy == 0 && dx <= 0 {
				return Kernel{}, errors.Wrapf(ErrInvalidKernel, "weight %d at (%d,0) points at a visited pixel", w, dx)
			}
			k.Taps = append(k.Taps, Tap{DX: dx, DY: dy, Weight: w})
		}
	}

	if err := k.validateCustom(); err != nil {
		return Kernel{}, err
	}

	return k, nil
}

// validateCustom checks a user supplied kernel, which must be normalised.
func (k Kernel) validateCustom() error {
	if err := k.validate(); err != nil {
		return err
	}
	if sum := k.Sum(); sum != k.Divisor {
		return errors.Wrapf(ErrInvalidKernel, "%s: weights sum to %d, divisor is %d", k.Name, sum, k.Divisor)
	}
	return nil
}

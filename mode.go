package bitpast

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode is one of the four supported graphics modes.
type Mode int

// Graphics modes.
const (
	ModeLGR Mode = iota
	ModeDLGR
	ModeHGR
	ModeDHGR
)

// Layout describes which memory banks a mode occupies.
type Layout int

// Memory layouts.
const (
	LayoutMain Layout = iota
	LayoutAuxMain
)

// Profile selects how HGR picks the color group of each byte.
type Profile int

// HGR color profiles.
const (
	// ProfileAuto votes per byte.
	ProfileAuto Profile = iota
	// ProfileVioletGreen forces group 0 in every byte.
	ProfileVioletGreen
	// ProfileBlueOrange forces group 1 in every byte.
	ProfileBlueOrange
)

var profileNames = map[string]Profile{
	"auto":         ProfileAuto,
	"violet-green": ProfileVioletGreen,
	"blue-orange":  ProfileBlueOrange,
}

// ParseProfile resolves a profile name.
func ParseProfile(name string) (Profile, error) {
	p, ok := profileNames[strings.ToLower(name)]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidConfig, "unknown profile %q", name)
	}
	return p, nil
}

func (p Profile) String() string {
	for k, v := range profileNames {
		if v == p {
			return k
		}
	}
	return "unknown"
}

// ModeDescriptor holds the fixed properties of a mode.
type ModeDescriptor struct {
	Mode Mode
	Name string
	Ext  string

	// Width and Height are the pixel dimensions of the display.
	Width, Height int
	// BitsPerPixel is the storage cost of one displayed pixel.
	BitsPerPixel int
	Layout       Layout
	// Artifact is set for modes whose colors come from NTSC artifacting.
	Artifact bool
	// Size is the length of an encoded buffer in bytes.
	Size int
	// Base is the load address of each bank.
	Base uint16
}

var modes = [...]ModeDescriptor{
	ModeLGR: {
		Mode: ModeLGR, Name: "lgr", Ext: ".lgr",
		Width: 40, Height: 48, BitsPerPixel: 4,
		Layout: LayoutMain, Size: 1024, Base: 0x0400,
	},
	ModeDLGR: {
		Mode: ModeDLGR, Name: "dlgr", Ext: ".dlgr",
		Width: 80, Height: 48, BitsPerPixel: 4,
		Layout: LayoutAuxMain, Size: 2048, Base: 0x0400,
	},
	ModeHGR: {
		Mode: ModeHGR, Name: "hgr", Ext: ".hgr",
		Width: 280, Height: 192, BitsPerPixel: 1,
		Layout: LayoutMain, Artifact: true, Size: 8192, Base: 0x2000,
	},
	ModeDHGR: {
		Mode: ModeDHGR, Name: "dhgr", Ext: ".dhgr",
		Width: 560, Height: 192, BitsPerPixel: 1,
		Layout: LayoutAuxMain, Artifact: true, Size: 16384, Base: 0x2000,
	},
}

// ParseMode resolves a mode name such as "hgr".
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range modes {
		if d.Name == name {
			return d.Mode, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown mode %q", name)
}

// Descriptor returns the fixed properties of m.
func (m Mode) Descriptor() ModeDescriptor {
	return modes[m]
}

func (m Mode) String() string {
	if !m.valid() {
		return "unknown"
	}
	return modes[m].Name
}

func (m Mode) valid() bool {
	return m >= ModeLGR && m <= ModeDHGR
}

// WorkingSize returns the grid dimensions the dither engine runs at. Color
// HGR and DHGR work on 140 color cells per row; monochrome output works on
// display pixels.
func (m Mode) WorkingSize(mono bool) (width, height int) {
	d := modes[m]
	if d.Artifact && !mono {
		return 140, d.Height
	}
	return d.Width, d.Height
}

// HGR color indices in the lo-res palette order.
var hgrIndices = []uint8{Black, Purple, MediumBlue, Orange, LightGreen, White}

var monoIndices = []uint8{Black, White}

// Candidates returns the palette indices m can display.
func (m Mode) Candidates(mono bool, profile Profile) []uint8 {
	if mono {
		return monoIndices
	}
	if m != ModeHGR {
		return nil
	}

	switch profile {
	case ProfileVioletGreen:
		return []uint8{Black, Purple, LightGreen, White}
	case ProfileBlueOrange:
		return []uint8{Black, MediumBlue, Orange, White}
	}
	return hgrIndices
}

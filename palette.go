package bitpast

import (
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// PaletteSize is the number of colors every hardware palette holds.
const PaletteSize = 16

// Lo-res color indices. Every palette in the catalog is ordered this way and
// the encoders write these indices straight into video memory.
const (
	Black = iota
	Red
	DarkBlue
	Purple
	DarkGreen
	Gray1
	MediumBlue
	LightBlue
	Brown
	Orange
	Gray2
	Pink
	LightGreen
	Yellow
	Aqua
	White
)

// RGB is a single 8-bit per channel sample.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Luma returns the Rec. 601 luma of the color in the range 0-255.
func (c RGB) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// RGBModel converts any color to RGB, dropping alpha.
var RGBModel = color.ModelFunc(func(c color.Color) color.Color {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
})

// Palette is a 16 entry hardware color table. It is a value type: copies
// never share storage, so no caller can alter a catalog entry.
type Palette [PaletteSize]RGB

// Colors returns the palette as a color.Palette.
func (p Palette) Colors() color.Palette {
	out := make(color.Palette, PaletteSize)
	for i, c := range p {
		out[i] = c
	}
	return out
}

type catalogEntry struct {
	id      int
	palette Palette
}

// The tables below are the measured/emulator palettes used by Apple II
// tooling, in lo-res color order.
var catalog = map[string]catalogEntry{
	"kegs32": {0, Palette{
		{0, 0, 0}, {221, 0, 51}, {0, 0, 153}, {221, 0, 221},
		{0, 119, 0}, {85, 85, 85}, {34, 34, 255}, {102, 170, 255},
		{136, 85, 34}, {255, 102, 0}, {170, 170, 170}, {255, 153, 136},
		{0, 221, 0}, {255, 255, 0}, {0, 255, 153}, {255, 255, 255},
	}},
	"ciderpress": {1, Palette{
		{0, 0, 0}, {221, 0, 51}, {0, 0, 153}, {221, 34, 221},
		{0, 119, 34}, {85, 85, 85}, {34, 34, 255}, {102, 170, 255},
		{136, 85, 0}, {255, 102, 0}, {170, 170, 170}, {255, 153, 136},
		{17, 221, 0}, {255, 255, 0}, {68, 255, 153}, {255, 255, 255},
	}},
	"awinold": {2, Palette{
		{0, 0, 0}, {208, 0, 48}, {0, 0, 128}, {255, 0, 255},
		{0, 128, 0}, {128, 128, 128}, {0, 0, 255}, {96, 160, 255},
		{128, 80, 0}, {255, 128, 0}, {192, 192, 192}, {255, 144, 128},
		{0, 255, 0}, {255, 255, 0}, {64, 255, 144}, {255, 255, 255},
	}},
	"awinnew": {3, Palette{
		{0, 0, 0}, {157, 9, 102}, {42, 42, 229}, {199, 52, 255},
		{0, 118, 26}, {128, 128, 128}, {13, 161, 255}, {170, 170, 255},
		{85, 85, 0}, {242, 94, 0}, {192, 192, 192}, {255, 137, 229},
		{56, 203, 0}, {213, 213, 26}, {98, 246, 153}, {255, 255, 255},
	}},
	"wikipedia": {4, Palette{
		{0, 0, 0}, {114, 38, 64}, {64, 51, 127}, {228, 52, 254},
		{14, 89, 64}, {128, 128, 128}, {27, 154, 254}, {191, 179, 255},
		{64, 76, 0}, {228, 101, 1}, {128, 128, 128}, {241, 166, 191},
		{27, 203, 1}, {191, 204, 128}, {141, 217, 191}, {255, 255, 255},
	}},
	"tohgr": {5, Palette{
		{0, 0, 0}, {148, 12, 125}, {32, 54, 212}, {188, 55, 255},
		{51, 111, 0}, {126, 126, 126}, {7, 168, 225}, {158, 172, 255},
		{99, 77, 0}, {249, 86, 29}, {126, 126, 126}, {255, 129, 236},
		{67, 200, 0}, {221, 206, 23}, {93, 248, 133}, {255, 255, 255},
	}},
	"superconvert": {7, Palette{
		{0, 0, 0}, {221, 0, 51}, {0, 0, 153}, {221, 0, 221},
		{0, 119, 0}, {85, 85, 85}, {34, 34, 255}, {102, 170, 255},
		{136, 85, 34}, {255, 102, 0}, {170, 170, 170}, {255, 153, 136},
		{0, 221, 0}, {255, 255, 0}, {0, 255, 153}, {255, 255, 255},
	}},
	"jace": {8, Palette{
		{0, 0, 0}, {177, 0, 93}, {32, 41, 255}, {210, 41, 255},
		{0, 127, 34}, {127, 127, 127}, {0, 168, 255}, {160, 168, 255},
		{94, 86, 0}, {255, 86, 0}, {127, 127, 127}, {255, 127, 220},
		{44, 213, 0}, {222, 213, 0}, {77, 255, 161}, {255, 255, 255},
	}},
	"cybernesto": {9, Palette{
		{0, 0, 0}, {227, 30, 96}, {96, 78, 189}, {255, 68, 253},
		{0, 163, 96}, {156, 156, 156}, {20, 207, 253}, {208, 195, 255},
		{96, 114, 3}, {255, 106, 60}, {156, 156, 156}, {255, 160, 208},
		{20, 245, 60}, {208, 221, 141}, {114, 255, 208}, {255, 255, 255},
	}},
	"hgr": {10, Palette{
		{0x00, 0x00, 0x00}, {0xad, 0x18, 0x28}, {0x55, 0x1b, 0xe1}, {0xe8, 0x2c, 0xf8},
		{0x01, 0x73, 0x63}, {0x7e, 0x82, 0x7f}, {0x34, 0x85, 0xfc}, {0xd1, 0x95, 0xff},
		{0x33, 0x6f, 0x00}, {0xd0, 0x81, 0x01}, {0x7f, 0x7e, 0x77}, {0xfe, 0x93, 0xa3},
		{0x1d, 0xd6, 0x09}, {0xae, 0xea, 0x22}, {0x5b, 0xeb, 0xd9}, {0xff, 0xff, 0xff},
	}},
	"pseudo": {11, Palette{
		{0, 0, 0}, {184, 6, 88}, {16, 27, 182}, {204, 27, 238},
		{25, 115, 0}, {105, 105, 105}, {20, 101, 240}, {130, 171, 255},
		{117, 81, 17}, {252, 94, 14}, {148, 148, 148}, {255, 141, 186},
		{33, 210, 0}, {238, 230, 11}, {46, 251, 143}, {255, 255, 255},
	}},
}

// DefaultPalette is the palette used when none is configured.
const DefaultPalette = "tohgr"

// PseudoPalette is the catalog name of the image-adapted palette.
const PseudoPalette = "pseudo"

func canonicalPaletteName(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := catalog[name]; ok {
		return name, true
	}

	for k, v := range catalog {
		if name == "p"+strconv.Itoa(v.id) {
			return k, true
		}
	}

	return "", false
}

// LookupPalette returns the named catalog palette. Names are case
// insensitive and the numeric aliases p0 through p11 are accepted.
func LookupPalette(name string) (Palette, error) {
	key, ok := canonicalPaletteName(name)
	if !ok {
		return Palette{}, errors.Wrapf(ErrUnknownPalette, "%q", name)
	}
	return catalog[key].palette, nil
}

// PaletteNames returns the catalog names ordered by their numeric alias.
func PaletteNames() []string {
	names := lo.Keys(catalog)
	sort.Slice(names, func(i, j int) bool {
		return catalog[names[i]].id < catalog[names[j]].id
	})
	return names
}

// BlendPalettes averages several catalog palettes entry by entry.
func BlendPalettes(names ...string) (Palette, error) {
	if len(names) == 0 {
		return Palette{}, errors.Wrap(ErrUnknownPalette, "no palettes to blend")
	}

	var sum [PaletteSize][3]int
	for _, name := range names {
		p, err := LookupPalette(name)
		if err != nil {
			return Palette{}, err
		}
		for i, c := range p {
			sum[i][0] += int(c.R)
			sum[i][1] += int(c.G)
			sum[i][2] += int(c.B)
		}
	}

	var out Palette
	n := len(names)
	for i := range out {
		out[i] = RGB{
			uint8((sum[i][0] + n/2) / n),
			uint8((sum[i][1] + n/2) / n),
			uint8((sum[i][2] + n/2) / n),
		}
	}
	return out, nil
}

package bitpast

import (
	"context"
	"math/bits"
)

// hiresRowBase returns the offset of scan line y from the start of a hi-res
// page.
func hiresRowBase(y int) int {
	return 0x400*(y&7) + 0x80*((y>>3)&7) + 0x28*(y>>6)
}

// hgrFamily maps every lo-res index onto the closest of the six colors the
// hi-res screen can produce.
var hgrFamily = [PaletteSize]uint8{
	Black:      Black,
	Red:        Orange,
	DarkBlue:   MediumBlue,
	Purple:     Purple,
	DarkGreen:  LightGreen,
	Gray1:      Black,
	MediumBlue: MediumBlue,
	LightBlue:  MediumBlue,
	Brown:      Orange,
	Orange:     Orange,
	Gray2:      White,
	Pink:       Orange,
	LightGreen: LightGreen,
	Yellow:     Orange,
	Aqua:       LightGreen,
	White:      White,
}

// hgrPattern is the pair of bits a color cell sets, and the group bit its
// color needs. group is -1 for black and white.
type hgrPattern struct {
	even, odd bool
	group     int
}

var hgrPatterns = map[uint8]hgrPattern{
	Black:      {false, false, -1},
	White:      {true, true, -1},
	Purple:     {true, false, 0},
	LightGreen: {false, true, 0},
	MediumBlue: {true, false, 1},
	Orange:     {false, true, 1},
}

func hgrChromatic(c uint8) bool {
	return hgrPatterns[c].group >= 0
}

// hgrCell resolves a pixel pair to one hi-res color. A chromatic pixel wins
// over black or white; otherwise the even pixel wins.
func hgrCell(even, odd uint8) uint8 {
	a, b := hgrFamily[even&0x0f], hgrFamily[odd&0x0f]
	if a == b || !hgrChromatic(b) || hgrChromatic(a) {
		return a
	}
	return b
}

// monoBit reports whether a monochrome pixel is lit. Indices with at least
// two of their four color bits set are light.
func monoBit(c uint8) bool {
	return bits.OnesCount8(c&0x0f) >= 2
}

// encodeHires packs a 280x192 grid into hi-res page 1. In color each pixel
// pair forms one cell; the group bit of every byte goes to the group with
// the most lit chromatic bits in it, with ties keeping the group of the byte
// to its left. A forced profile overrides the vote. A cell whose group loses
// the vote displays as the other color of the same phase.
func encodeHires(ctx context.Context, g *IndexGrid, mono bool, profile Profile) (*EncodedBuffer, error) {
	buf := newBuffer(ModeHGR)
	main := buf.Segment(BankMain).Data

	err := forEachRow(ctx, 192, func(y int) error {
		var lit [280]bool
		var group [280]int

		for x := 0; x < 280; x++ {
			group[x] = -1
		}

		if mono {
			for x := 0; x < 280; x++ {
				lit[x] = monoBit(g.At(x, y))
			}
		} else {
			for c := 0; c < 140; c++ {
				p := hgrPatterns[hgrCell(g.At(2*c, y), g.At(2*c+1, y))]
				lit[2*c], lit[2*c+1] = p.even, p.odd
				group[2*c], group[2*c+1] = p.group, p.group
			}
		}

		base := hiresRowBase(y)
		prev := 0
		for i := 0; i < 40; i++ {
			var b byte
			var votes [2]int
			for k := 0; k < 7; k++ {
				x := i*7 + k
				if !lit[x] {
					continue
				}
				b |= 1 << k
				if group[x] >= 0 {
					votes[group[x]]++
				}
			}

			grp := prev
			switch {
			case mono:
				grp = 0
			case profile == ProfileVioletGreen:
				grp = 0
			case profile == ProfileBlueOrange:
				grp = 1
			case votes[0] > votes[1]:
				grp = 0
			case votes[1] > votes[0]:
				grp = 1
			}
			prev = grp

			main[base+i] = b | byte(grp)<<7
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buf, nil
}

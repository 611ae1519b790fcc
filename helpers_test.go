package bitpast

import (
	"math/rand"
)

func solidGrid(w, h int, c RGB) *PixelGrid {
	g := NewPixelGrid(w, h)
	for i := range g.Pix {
		g.Pix[i] = c
	}
	return g
}

func noiseGrid(w, h int, seed int64) *PixelGrid {
	r := rand.New(rand.NewSource(seed))
	g := NewPixelGrid(w, h)
	for i := range g.Pix {
		g.Pix[i] = RGB{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256))}
	}
	return g
}

func gradientGrid(w, h int) *PixelGrid {
	g := NewPixelGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, RGB{
				uint8(x * 255 / (w - 1)),
				uint8(y * 255 / (h - 1)),
				uint8(255 - x*255/(w-1)),
			})
		}
	}
	return g
}

func randomIndexGrid(w, h int, seed int64, choices []uint8) *IndexGrid {
	r := rand.New(rand.NewSource(seed))
	g := NewIndexGrid(w, h)
	for i := range g.Pix {
		g.Pix[i] = choices[r.Intn(len(choices))]
	}
	return g
}

func rotateNibbleLeft(c uint8) uint8 {
	c &= 0x0f
	return (c<<1 | c>>3) & 0x0f
}

// decodeLores reads text page 1 back into a 40x48 grid.
func decodeLores(main []byte) *IndexGrid {
	g := NewIndexGrid(40, 48)
	for row, base := range textBase {
		for col := 0; col < 40; col++ {
			b := main[int(base)+col]
			g.Set(col, row*2, b&0x0f)
			g.Set(col, row*2+1, b>>4)
		}
	}
	return g
}

// decodeDoubleLores reads both banks back into an 80x48 grid.
func decodeDoubleLores(aux, main []byte) *IndexGrid {
	a, m := decodeLores(aux), decodeLores(main)
	g := NewIndexGrid(80, 48)
	for y := 0; y < 48; y++ {
		for col := 0; col < 40; col++ {
			g.Set(col*2, y, rotateNibbleLeft(a.At(col, y)))
			g.Set(col*2+1, y, m.At(col, y))
		}
	}
	return g
}

// decodeHires reads hi-res page 1 back into a 140x192 grid of colors.
func decodeHires(main []byte) *IndexGrid {
	g := NewIndexGrid(140, 192)
	for y := 0; y < 192; y++ {
		base := hiresRowBase(y)
		bit := func(x int) (bool, byte) {
			b := main[base+x/7]
			return b&(1<<(x%7)) != 0, b >> 7
		}
		for c := 0; c < 140; c++ {
			even, ge := bit(2 * c)
			odd, gd := bit(2*c + 1)
			switch {
			case even && odd:
				g.Set(c, y, White)
			case even && ge == 0:
				g.Set(c, y, Purple)
			case even:
				g.Set(c, y, MediumBlue)
			case odd && gd == 0:
				g.Set(c, y, LightGreen)
			case odd:
				g.Set(c, y, Orange)
			default:
				g.Set(c, y, Black)
			}
		}
	}
	return g
}

// dhrStream reassembles the 80 byte display stream of scan line y.
func dhrStream(aux, main []byte, y int) []byte {
	base := hiresRowBase(y)
	out := make([]byte, 80)
	for i := range out {
		if i%2 == 0 {
			out[i] = aux[base+i/2]
		} else {
			out[i] = main[base+i/2]
		}
	}
	return out
}

// decodeDoubleHires reads both banks back into a 140x192 grid of colors.
func decodeDoubleHires(aux, main []byte) *IndexGrid {
	g := NewIndexGrid(140, 192)
	for y := 0; y < 192; y++ {
		stream := dhrStream(aux, main, y)
		for c := 0; c < 140; c++ {
			var n uint8
			for i := 0; i < 4; i++ {
				s := c*4 + i
				if stream[s/7]&(1<<(s%7)) != 0 {
					n |= 1 << i
				}
			}
			g.Set(c, y, rotateNibbleLeft(n))
		}
	}
	return g
}

package bitpast

import "context"

// dhrBytes holds, for each color, the four bytes of a 28 bit run of that
// color. Byte order is aux, main, aux, main; seven cells of four bits fill
// the run.
var dhrBytes = [PaletteSize][4]byte{
	{0x00, 0x00, 0x00, 0x00},
	{0x08, 0x11, 0x22, 0x44},
	{0x11, 0x22, 0x44, 0x08},
	{0x19, 0x33, 0x66, 0x4c},
	{0x22, 0x44, 0x08, 0x11},
	{0x2a, 0x55, 0x2a, 0x55},
	{0x33, 0x66, 0x4c, 0x19},
	{0x3b, 0x77, 0x6e, 0x5d},
	{0x44, 0x08, 0x11, 0x22},
	{0x4c, 0x19, 0x33, 0x66},
	{0x55, 0x2a, 0x55, 0x2a},
	{0x5d, 0x3b, 0x77, 0x6e},
	{0x66, 0x4c, 0x19, 0x33},
	{0x6e, 0x5d, 0x3b, 0x77},
	{0x77, 0x6e, 0x5d, 0x3b},
	{0x7f, 0x7f, 0x7f, 0x7f},
}

// dhrMasks[j][k] selects the bits of byte k that belong to cell j of a run.
var dhrMasks = func() (m [7][4]byte) {
	for j := 0; j < 7; j++ {
		for b := j * 4; b < j*4+4; b++ {
			m[j][b/7] |= 1 << (b % 7)
		}
	}
	return m
}()

// dhrStreamByte stores byte i of a scan line's 80 byte stream. Even stream
// bytes live in auxiliary memory, odd ones in main memory.
func dhrStreamByte(aux, main []byte, base, i int, b byte) {
	if i%2 == 0 {
		aux[base+i/2] = b
	} else {
		main[base+i/2] = b
	}
}

// encodeDoubleHires packs a 560x192 grid into hi-res page 1 of both banks.
// In color every four pixels form one cell showing the most common index
// among them.
func encodeDoubleHires(ctx context.Context, g *IndexGrid, mono bool) (*EncodedBuffer, error) {
	buf := newBuffer(ModeDHGR)
	aux := buf.Segment(BankAux).Data
	main := buf.Segment(BankMain).Data

	err := forEachRow(ctx, 192, func(y int) error {
		base := hiresRowBase(y)

		if mono {
			for i := 0; i < 80; i++ {
				var b byte
				for k := 0; k < 7; k++ {
					if monoBit(g.At(i*7+k, y)) {
						b |= 1 << k
					}
				}
				dhrStreamByte(aux, main, base, i, b)
			}
			return nil
		}

		for run := 0; run < 20; run++ {
			var out [4]byte
			for j := 0; j < 7; j++ {
				x := (run*7 + j) * 4
				c := g.majority(x, y, x+4, y+1) & 0x0f
				for k := range out {
					out[k] |= dhrBytes[c][k] & dhrMasks[j][k]
				}
			}
			for k, b := range out {
				dhrStreamByte(aux, main, base, run*4+k, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buf, nil
}

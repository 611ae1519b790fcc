package bitpast

import "context"

// textBase holds the offset of each 40 column text row from $0400. Lo-res
// graphics share the text page; each text row holds two block rows.
var textBase = [24]uint16{
	0x000, 0x080, 0x100, 0x180, 0x200, 0x280, 0x300, 0x380,
	0x028, 0x0a8, 0x128, 0x1a8, 0x228, 0x2a8, 0x328, 0x3a8,
	0x050, 0x0d0, 0x150, 0x1d0, 0x250, 0x2d0, 0x350, 0x3d0,
}

// rotateNibble rotates a 4 bit color right by one bit. Auxiliary memory
// columns sit a quarter cycle ahead of the color subcarrier, so their colors
// must be stored rotated.
func rotateNibble(c uint8) uint8 {
	c &= 0x0f
	return (c>>1 | c<<3) & 0x0f
}

// loresByte packs two vertically adjacent blocks into one screen byte.
func loresByte(top, bottom uint8) byte {
	return (top & 0x0f) | (bottom&0x0f)<<4
}

// encodeLores packs a 40x48 grid into text page 1. Screen holes are left
// zero.
func encodeLores(ctx context.Context, g *IndexGrid) (*EncodedBuffer, error) {
	buf := newBuffer(ModeLGR)
	main := buf.Segment(BankMain).Data

	err := forEachRow(ctx, len(textBase), func(row int) error {
		base := int(textBase[row])
		for col := 0; col < 40; col++ {
			main[base+col] = loresByte(g.At(col, row*2), g.At(col, row*2+1))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// encodeDoubleLores packs an 80x48 grid. Even columns go to auxiliary memory
// with rotated colors, odd columns to main memory.
func encodeDoubleLores(ctx context.Context, g *IndexGrid) (*EncodedBuffer, error) {
	buf := newBuffer(ModeDLGR)
	aux := buf.Segment(BankAux).Data
	main := buf.Segment(BankMain).Data

	err := forEachRow(ctx, len(textBase), func(row int) error {
		base := int(textBase[row])
		for col := 0; col < 40; col++ {
			x := col * 2
			aux[base+col] = loresByte(
				rotateNibble(g.At(x, row*2)),
				rotateNibble(g.At(x, row*2+1)),
			)
			main[base+col] = loresByte(g.At(x+1, row*2), g.At(x+1, row*2+1))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buf, nil
}

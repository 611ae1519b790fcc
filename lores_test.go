package bitpast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextBase(t *testing.T) {
	want := []uint16{
		0x0400, 0x0480, 0x0500, 0x0580, 0x0600, 0x0680, 0x0700, 0x0780,
		0x0428, 0x04A8, 0x0528, 0x05A8, 0x0628, 0x06A8, 0x0728, 0x07A8,
		0x0450, 0x04D0, 0x0550, 0x05D0, 0x0650, 0x06D0, 0x0750, 0x07D0,
	}
	for row, base := range textBase {
		assert.Equal(t, want[row], 0x400+base, "row %d", row)
		assert.Equal(t, 0x80*uint16(row%8)+0x28*uint16(row/8), base, "row %d", row)
	}
}

func TestRotateNibble(t *testing.T) {
	aux := []uint8{0, 8, 1, 9, 2, 10, 3, 11, 4, 12, 5, 13, 6, 14, 7, 15}
	for c := uint8(0); c < PaletteSize; c++ {
		assert.Equal(t, aux[c], rotateNibble(c))
		assert.Equal(t, c, rotateNibbleLeft(rotateNibble(c)))
	}
}

func TestLoresRoundTrip(t *testing.T) {
	g := randomIndexGrid(40, 48, 9, allIndices)
	buf, err := Encode(context.Background(), ModeLGR, g, EncodeOptions{})
	require.NoError(t, err)

	require.Len(t, buf.Segments, 1)
	assert.Equal(t, BankMain, buf.Segments[0].Bank)
	assert.Equal(t, uint16(0x0400), buf.Segments[0].Base)
	require.Equal(t, 1024, buf.Len())

	assert.Equal(t, g.Pix, decodeLores(buf.Bytes()).Pix)
}

func TestLoresScreenHolesZero(t *testing.T) {
	g := NewIndexGrid(40, 48)
	for i := range g.Pix {
		g.Pix[i] = White
	}
	buf, err := Encode(context.Background(), ModeLGR, g, EncodeOptions{})
	require.NoError(t, err)

	data := buf.Bytes()
	for block := 0; block < 8; block++ {
		for off := 0x78; off < 0x80; off++ {
			assert.Zero(t, data[block*0x80+off], "hole at %#x", block*0x80+off)
		}
		for off := 0; off < 0x78; off++ {
			assert.Equal(t, byte(0xff), data[block*0x80+off])
		}
	}
}

func TestLoresNibbleOrder(t *testing.T) {
	g := NewIndexGrid(40, 48)
	g.Set(0, 0, Red)
	g.Set(0, 1, Yellow)
	g.Set(1, 2, Aqua)

	buf, err := Encode(context.Background(), ModeLGR, g, EncodeOptions{})
	require.NoError(t, err)

	data := buf.Bytes()
	assert.Equal(t, byte(Yellow<<4|Red), data[0x000])
	assert.Equal(t, byte(Aqua), data[0x081])
}

func TestDoubleLoresRoundTrip(t *testing.T) {
	g := randomIndexGrid(80, 48, 10, allIndices)
	buf, err := Encode(context.Background(), ModeDLGR, g, EncodeOptions{})
	require.NoError(t, err)

	require.Equal(t, 2048, buf.Len())
	aux, main := buf.Segment(BankAux), buf.Segment(BankMain)
	require.NotNil(t, aux)
	require.NotNil(t, main)
	assert.Equal(t, BankAux, buf.Segments[0].Bank)

	data := buf.Bytes()
	assert.Equal(t, aux.Data, data[:1024])
	assert.Equal(t, main.Data, data[1024:])
	assert.Equal(t, g.Pix, decodeDoubleLores(aux.Data, main.Data).Pix)
}

func TestDoubleLoresAuxRotation(t *testing.T) {
	g := NewIndexGrid(80, 48)
	g.Set(0, 0, Red)
	g.Set(1, 0, Red)

	buf, err := Encode(context.Background(), ModeDLGR, g, EncodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, byte(0x08), buf.Segment(BankAux).Data[0])
	assert.Equal(t, byte(0x01), buf.Segment(BankMain).Data[0])
}

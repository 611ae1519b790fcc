package bitpast

import (
	"io"

	"github.com/samber/lo"
)

// Bank identifies a 64K memory bank.
type Bank int

// Memory banks.
const (
	BankMain Bank = iota
	BankAux
)

func (b Bank) String() string {
	if b == BankAux {
		return "aux"
	}
	return "main"
}

// Segment is a run of bytes destined for one bank at a load address.
type Segment struct {
	Bank Bank
	Base uint16
	Data []byte
}

// EncodedBuffer is the output of an encoder. Segments are stored in file
// order: auxiliary memory before main memory.
type EncodedBuffer struct {
	Mode     Mode
	Segments []Segment
}

func newBuffer(m Mode) *EncodedBuffer {
	d := m.Descriptor()
	b := &EncodedBuffer{Mode: m}
	if d.Layout == LayoutAuxMain {
		half := d.Size / 2
		b.Segments = []Segment{
			{Bank: BankAux, Base: d.Base, Data: make([]byte, half)},
			{Bank: BankMain, Base: d.Base, Data: make([]byte, half)},
		}
	} else {
		b.Segments = []Segment{
			{Bank: BankMain, Base: d.Base, Data: make([]byte, d.Size)},
		}
	}
	return b
}

// Segment returns the segment for bank, or nil if the mode does not use it.
func (b *EncodedBuffer) Segment(bank Bank) *Segment {
	for i := range b.Segments {
		if b.Segments[i].Bank == bank {
			return &b.Segments[i]
		}
	}
	return nil
}

// Len returns the total number of bytes held.
func (b *EncodedBuffer) Len() int {
	return lo.SumBy(b.Segments, func(s Segment) int { return len(s.Data) })
}

// Bytes returns the segments concatenated in file order.
func (b *EncodedBuffer) Bytes() []byte {
	out := make([]byte, 0, b.Len())
	for _, s := range b.Segments {
		out = append(out, s.Data...)
	}
	return out
}

// WriteTo writes the segments in file order.
func (b *EncodedBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range b.Segments {
		n, err := w.Write(s.Data)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

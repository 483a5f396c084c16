package ring

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BinarySize returns the serialized size of the object in bytes:
// a header (degree, component count, representation form), the moduli
// and the coefficients.
func (p *RNSPoly) BinarySize() int {
	count := len(p.Components)
	return 8 + 8 + 1 + 8*count + 8*p.N()*count
}

// MarshalBinary encodes the object into a binary form on a newly
// allocated slice of bytes.
func (p *RNSPoly) MarshalBinary() (data []byte, err error) {

	data = make([]byte, p.BinarySize())

	N := p.N()
	count := len(p.Components)

	binary.LittleEndian.PutUint64(data[0:], uint64(N))
	binary.LittleEndian.PutUint64(data[8:], uint64(count))
	if p.IsNTT {
		data[16] = 1
	}

	ptr := 17
	for _, q := range p.Moduli {
		binary.LittleEndian.PutUint64(data[ptr:], q)
		ptr += 8
	}

	for i := range p.Components {
		for _, c := range p.Components[i] {
			binary.LittleEndian.PutUint64(data[ptr:], c)
			ptr += 8
		}
	}

	return
}

// UnmarshalBinary decodes a slice of bytes generated by
// [RNSPoly.MarshalBinary] on the object.
func (p *RNSPoly) UnmarshalBinary(data []byte) (err error) {

	if len(data) < 17 {
		return fmt.Errorf("cannot UnmarshalBinary: invalid header size %d", len(data))
	}

	N := int(binary.LittleEndian.Uint64(data[0:]))
	count := int(binary.LittleEndian.Uint64(data[8:]))

	if N < MinimumRingDegree || N&(N-1) != 0 || count < 1 {
		return fmt.Errorf("cannot UnmarshalBinary: invalid dimensions N=%d, count=%d", N, count)
	}

	if expected := 17 + 8*count + 8*N*count; len(data) != expected {
		return fmt.Errorf("cannot UnmarshalBinary: invalid size %d, expected %d", len(data), expected)
	}

	moduli := make([]uint64, count)
	ptr := 17
	for i := range moduli {
		moduli[i] = binary.LittleEndian.Uint64(data[ptr:])
		ptr += 8
	}

	var pNew *RNSPoly
	if pNew, err = NewRNSPoly(N, moduli); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w", err)
	}

	pNew.IsNTT = data[16] == 1

	for i := range pNew.Components {
		for j := range pNew.Components[i] {
			pNew.Components[i][j] = binary.LittleEndian.Uint64(data[ptr:])
			ptr += 8
		}
	}

	*p = *pNew

	return
}

// WriteTo writes the object on an io.Writer. It implements the
// io.WriterTo interface, writing exactly BinarySize() bytes.
func (p *RNSPoly) WriteTo(w io.Writer) (n int64, err error) {

	data, err := p.MarshalBinary()
	if err != nil {
		return 0, err
	}

	written, err := w.Write(data)
	return int64(written), err
}

// ReadFrom reads the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (p *RNSPoly) ReadFrom(r io.Reader) (n int64, err error) {

	header := make([]byte, 17)
	if _, err = io.ReadFull(r, header); err != nil {
		return 0, err
	}

	N := int(binary.LittleEndian.Uint64(header[0:]))
	count := int(binary.LittleEndian.Uint64(header[8:]))

	if N < MinimumRingDegree || N&(N-1) != 0 || count < 1 {
		return 17, fmt.Errorf("cannot ReadFrom: invalid dimensions N=%d, count=%d", N, count)
	}

	body := make([]byte, 8*count+8*N*count)
	if _, err = io.ReadFull(r, body); err != nil {
		return 17, err
	}

	data := append(header, body...)

	if err = p.UnmarshalBinary(data); err != nil {
		return int64(len(data)), err
	}

	return int64(len(data)), nil
}

// Package wire provides the big-endian primitive encode/decode operations
// and the CRC-16/Modbus checksum that every PDU in the GivEnergy dialect is
// built from.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// Encoder accumulates bytes for an outgoing PDU. Byte order is always big
// endian; there is no word-swapped variant in this dialect.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

func (e *Encoder) PutUint8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) PutUint16(v uint16) *Encoder {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
	return e
}

func (e *Encoder) PutUint32(v uint32) *Encoder {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
	return e
}

func (e *Encoder) PutUint64(v uint64) *Encoder {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
	return e
}

// PutASCII right-justifies s to width bytes, left-padding with '*' (the
// dialect's serial-number padding character), and appends it latin-1 encoded.
// A s longer than width is truncated to its trailing width bytes.
func (e *Encoder) PutASCII(s string, width int) *Encoder {
	if len(s) > width {
		s = s[len(s)-width:]
	}
	padded := make([]byte, width)
	pad := width - len(s)
	for i := 0; i < pad; i++ {
		padded[i] = '*'
	}
	copy(padded[pad:], s)
	e.buf = append(e.buf, padded...)
	return e
}

// PutRaw appends raw bytes verbatim.
func (e *Encoder) PutRaw(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

// Bytes returns the accumulated buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Decoder reads big-endian primitives from a fixed byte slice, tracking a
// read cursor. Every method returns common.ErrShortBuffer instead of
// panicking when the cursor would run past the end.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder wraps data for sequential decoding.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Remaining returns the number of unconsumed bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Done reports whether every byte has been consumed.
func (d *Decoder) Done() bool {
	return d.pos == len(d.buf)
}

// Len returns the total length of the wrapped buffer.
func (d *Decoder) Len() int {
	return len(d.buf)
}

func (d *Decoder) need(n int) error {
	if d.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", common.ErrShortBuffer, n, d.Remaining())
	}
	return nil
}

func (d *Decoder) Uint8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

func (d *Decoder) Uint16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(d.buf[d.pos : d.pos+2])
	d.pos += 2
	return v, nil
}

func (d *Decoder) Uint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos : d.pos+4])
	d.pos += 4
	return v, nil
}

func (d *Decoder) Uint64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos : d.pos+8])
	d.pos += 8
	return v, nil
}

// ASCII reads width bytes and decodes them latin-1 (each byte is its own
// code point, matching the source dialect's use of Python's 'latin1' codec).
func (d *Decoder) ASCII(width int) (string, error) {
	if err := d.need(width); err != nil {
		return "", err
	}
	raw := d.buf[d.pos : d.pos+width]
	d.pos += width
	runes := make([]rune, width)
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// Raw reads n bytes verbatim.
func (d *Decoder) Raw(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	raw := d.buf[d.pos : d.pos+n]
	d.pos += n
	return raw, nil
}

// Peek returns the remaining unconsumed bytes without advancing the cursor.
func (d *Decoder) Peek() []byte {
	return d.buf[d.pos:]
}

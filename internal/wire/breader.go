package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortRead is returned when a BinaryReader is asked for more bytes than
// remain. Framed message lengths are trusted (spec §3), so callers should
// never hit this in practice; it exists so a malformed server response
// surfaces as a protocol error rather than a panic.
var ErrShortRead = errors.New("wire: short read")

// BinaryReader is a positional cursor over a single column value's raw bytes,
// the unit every jsonenc serializer decodes from. Unlike MessageStream (which
// walks the framed message stream), a BinaryReader never refills — its
// backing slice is exactly the bytes it was constructed over.
type BinaryReader struct {
	buf []byte
	pos int
}

// NewBinaryReader constructs a reader over the given value bytes.
func NewBinaryReader(buf []byte) *BinaryReader {
	return &BinaryReader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *BinaryReader) Len() int {
	return len(r.buf) - r.pos
}

func (r *BinaryReader) take(n int) ([]byte, error) {
	if r.Len() < n {
		return nil, ErrShortRead
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *BinaryReader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

// Byte reads a single unsigned byte.
func (r *BinaryReader) Byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a big-endian uint16.
func (r *BinaryReader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Int16 reads a big-endian int16.
func (r *BinaryReader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Uint32 reads a big-endian uint32.
func (r *BinaryReader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Int32 reads a big-endian int32.
func (r *BinaryReader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads a big-endian uint64.
func (r *BinaryReader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Int64 reads a big-endian int64.
func (r *BinaryReader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Float32 reads an IEEE-754 big-endian float32.
func (r *BinaryReader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Float64 reads an IEEE-754 big-endian float64.
func (r *BinaryReader) Float64() (float64, error) {
	v, err := r.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Uint32LE reads a little-endian uint32 (EWKB type words are host-endian,
// signaled by the geometry's own endianness byte).
func (r *BinaryReader) Uint32LE() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Float64LE reads a little-endian float64 (used by little-endian EWKB).
func (r *BinaryReader) Float64LE() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// CString reads a NUL-terminated string and advances past the terminator.
func (r *BinaryReader) CString() (string, error) {
	for i := r.pos; i < len(r.buf); i++ {
		if r.buf[i] == 0 {
			s := string(r.buf[r.pos:i])
			r.pos = i + 1
			return s, nil
		}
	}
	return "", errors.New("wire: missing NUL terminator")
}

// Bytes returns the next n bytes and advances the cursor.
func (r *BinaryReader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// Rest returns every remaining unread byte without advancing past the end.
func (r *BinaryReader) Rest() []byte {
	b := r.buf[r.pos:]
	r.pos = len(r.buf)
	return b
}

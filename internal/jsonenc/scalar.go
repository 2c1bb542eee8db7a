package jsonenc

import (
	"bufio"
	"fmt"
	"math"
	"strconv"

	"github.com/caslabs/casql/internal/wire"
)

func writeBool(out *bufio.Writer, r *wire.BinaryReader) error {
	b, err := r.Byte()
	if err != nil {
		return err
	}
	if b != 0 {
		_, err = out.WriteString("true")
	} else {
		_, err = out.WriteString("false")
	}
	return err
}

func writeInt16(out *bufio.Writer, r *wire.BinaryReader) error {
	v, err := r.Int16()
	if err != nil {
		return err
	}
	_, err = out.WriteString(strconv.FormatInt(int64(v), 10))
	return err
}

func writeInt32(out *bufio.Writer, r *wire.BinaryReader) error {
	v, err := r.Int32()
	if err != nil {
		return err
	}
	_, err = out.WriteString(strconv.FormatInt(int64(v), 10))
	return err
}

func writeInt64(out *bufio.Writer, r *wire.BinaryReader) error {
	v, err := r.Int64()
	if err != nil {
		return err
	}
	_, err = out.WriteString(strconv.FormatInt(v, 10))
	return err
}

// writeFloatText renders f as JSON per spec.md §4.8: finite values use the
// shortest round-trip decimal (strconv's 'g' verb with precision -1); NaN
// and the infinities, which JSON has no numeric form for, are written as
// the quoted strings "NaN"/"Infinity"/"-Infinity".
func writeFloatText(out *bufio.Writer, f float64, bitSize int) error {
	if math.IsNaN(f) {
		_, err := out.WriteString(`"NaN"`)
		return err
	}
	if math.IsInf(f, 1) {
		_, err := out.WriteString(`"Infinity"`)
		return err
	}
	if math.IsInf(f, -1) {
		_, err := out.WriteString(`"-Infinity"`)
		return err
	}
	_, err := out.WriteString(strconv.FormatFloat(f, 'g', -1, bitSize))
	return err
}

// fmtFloat64 is the bare shortest-round-trip text for a finite float64,
// shared by the geometry serializers whose coordinates are never NaN/Inf.
func fmtFloat64(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeFloat32(out *bufio.Writer, r *wire.BinaryReader) error {
	v, err := r.Float32()
	if err != nil {
		return err
	}
	return writeFloatText(out, float64(v), 32)
}

func writeFloat64(out *bufio.Writer, r *wire.BinaryReader) error {
	v, err := r.Float64()
	if err != nil {
		return err
	}
	return writeFloatText(out, v, 64)
}

// writeBytes writes a bytea value as a JSON array of unsigned decimal byte
// values, the array form spec.md §4.8 offers as an alternative to a base16
// string — the choice this repo makes (see DESIGN.md).
func writeBytes(out *bufio.Writer, raw []byte) error {
	if _, err := out.WriteString("["); err != nil {
		return err
	}
	for i, b := range raw {
		if i > 0 {
			if _, err := out.WriteString(","); err != nil {
				return err
			}
		}
		if _, err := out.WriteString(strconv.Itoa(int(b))); err != nil {
			return err
		}
	}
	_, err := out.WriteString("]")
	return err
}

// writeBitString writes a bit/varbit value as a string of '0'/'1'
// characters, trimming any padding bits in the last byte beyond bitCount.
func writeBitString(out *bufio.Writer, r *wire.BinaryReader) error {
	bitCount, err := r.Int32()
	if err != nil {
		return err
	}
	byteCount := (int(bitCount) + 7) / 8
	raw, err := r.Bytes(byteCount)
	if err != nil {
		return err
	}
	if _, err := out.WriteString(`"`); err != nil {
		return err
	}
	for i := 0; i < int(bitCount); i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		if raw[byteIdx]&(1<<uint(bitIdx)) != 0 {
			if _, err := out.WriteString("1"); err != nil {
				return err
			}
		} else {
			if _, err := out.WriteString("0"); err != nil {
				return err
			}
		}
	}
	_, err = out.WriteString(`"`)
	return err
}

func writeTid(out *bufio.Writer, r *wire.BinaryReader) error {
	block, err := r.Int32()
	if err != nil {
		return err
	}
	offset, err := r.Int16()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "[%d,%d]", block, offset)
	return err
}

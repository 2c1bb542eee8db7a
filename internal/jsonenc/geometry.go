package jsonenc

import (
	"bufio"
	"fmt"

	"github.com/caslabs/casql/internal/wire"
)

func readXY(r *wire.BinaryReader) (x, y float64, err error) {
	x, err = r.Float64()
	if err != nil {
		return 0, 0, err
	}
	y, err = r.Float64()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func writePair(out *bufio.Writer, x, y float64) error {
	_, err := fmt.Fprintf(out, "[%s,%s]", formatFloat(x), formatFloat(y))
	return err
}

// formatFloat renders a coordinate with the same shortest-round-trip rule
// the scalar Float64 serializer uses; geometry coordinates are always
// finite so the NaN/Infinity string cases never apply here.
func formatFloat(f float64) string {
	return fmtFloat64(f)
}

func writePoint(out *bufio.Writer, r *wire.BinaryReader) error {
	x, y, err := readXY(r)
	if err != nil {
		return err
	}
	return writePair(out, x, y)
}

// writeLine writes a Postgres `line` value (Ax + By + C = 0 coefficients)
// as the literal equation string spec.md §4.8 asks for.
func writeLine(out *bufio.Writer, r *wire.BinaryReader) error {
	a, err := r.Float64()
	if err != nil {
		return err
	}
	b, err := r.Float64()
	if err != nil {
		return err
	}
	c, err := r.Float64()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, `"%sx + %sy + %s = 0"`, formatFloat(a), formatFloat(b), formatFloat(c))
	return err
}

func writeLineSegment(out *bufio.Writer, r *wire.BinaryReader) error {
	x1, y1, err := readXY(r)
	if err != nil {
		return err
	}
	x2, y2, err := readXY(r)
	if err != nil {
		return err
	}
	if _, err := out.WriteString("["); err != nil {
		return err
	}
	if err := writePair(out, x1, y1); err != nil {
		return err
	}
	if _, err := out.WriteString(","); err != nil {
		return err
	}
	if err := writePair(out, x2, y2); err != nil {
		return err
	}
	_, err = out.WriteString("]")
	return err
}

func writeBox(out *bufio.Writer, r *wire.BinaryReader) error {
	// Box is wire-identical to LineSegment: two corner points, no count
	// prefix.
	return writeLineSegment(out, r)
}

// writePath writes a path or polygon's point array: an i32 count followed
// by that many (x,y) pairs. A path value carries a one-byte open/closed
// flag before the count; it is skipped, not surfaced in the JSON shape
// spec.md §4.8 defines. A polygon has no such byte.
func writePath(out *bufio.Writer, r *wire.BinaryReader, isPolygon bool) error {
	if !isPolygon {
		if err := r.Skip(1); err != nil { // closed flag
			return err
		}
	}
	count, err := r.Int32()
	if err != nil {
		return err
	}
	if _, err := out.WriteString("["); err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		if i > 0 {
			if _, err := out.WriteString(","); err != nil {
				return err
			}
		}
		x, y, err := readXY(r)
		if err != nil {
			return err
		}
		if err := writePair(out, x, y); err != nil {
			return err
		}
	}
	_, err = out.WriteString("]")
	return err
}

func writeCircle(out *bufio.Writer, r *wire.BinaryReader) error {
	x, y, err := readXY(r)
	if err != nil {
		return err
	}
	radius, err := r.Float64()
	if err != nil {
		return err
	}
	if _, err := out.WriteString("["); err != nil {
		return err
	}
	if err := writePair(out, x, y); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, ",%s]", formatFloat(radius))
	return err
}

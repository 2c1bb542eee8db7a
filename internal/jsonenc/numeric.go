package jsonenc

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/caslabs/casql/internal/wire"
	"github.com/shopspring/decimal"
)

const (
	numericNaN  = 0xC000
	numericNull = 0xF000
)

// writeBigNum decodes a numeric column's digit-block representation
// (spec.md §4.8) and writes it as a JSON number, or the string "NaN" for
// the NaN sentinel. The digit text is round-tripped through
// shopspring/decimal.NewFromString so the emitted value is confirmed valid
// decimal text before it's written as a bare JSON number — the same
// library the teacher's examples/numeric package registers for numeric
// columns.
func writeBigNum(out *bufio.Writer, r *wire.BinaryReader) error {
	ndigits, err := r.Int16()
	if err != nil {
		return err
	}
	weight, err := r.Int16()
	if err != nil {
		return err
	}
	sign, err := r.Uint16()
	if err != nil {
		return err
	}
	dscale, err := r.Int16()
	if err != nil {
		return err
	}
	digits := make([]int16, ndigits)
	for i := range digits {
		v, err := r.Int16()
		if err != nil {
			return err
		}
		digits[i] = v
	}

	switch sign {
	case numericNaN:
		_, err := out.WriteString(`"NaN"`)
		return err
	case numericNull:
		_, err := out.WriteString("null")
		return err
	}

	text := bigNumDigitsToString(digits, weight, dscale, sign == 0x4000)
	if _, err := decimal.NewFromString(text); err != nil {
		return fmt.Errorf("jsonenc: numeric %q: %w", text, err)
	}
	_, err = out.WriteString(text)
	return err
}

// bigNumDigitsToString implements Postgres's own numeric_out algorithm:
// the integral part is the first digit block unpadded followed by 4-digit
// zero-padded blocks down to weight 0 (implicit zeros once digits run out),
// and — when dscale>0 — a fractional part of zero-padded blocks, the final
// block cut to its first (dscale mod 4) digits when dscale is not a
// multiple of 4.
func bigNumDigitsToString(digits []int16, weight, dscale int16, negative bool) string {
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	ndigits := len(digits)
	var d int
	if weight < 0 {
		d = int(weight) + 1
		b.WriteByte('0')
	} else {
		for d = 0; d <= int(weight); d++ {
			var dig int16
			if d < ndigits {
				dig = digits[d]
			}
			if d == 0 {
				fmt.Fprintf(&b, "%d", dig)
			} else {
				fmt.Fprintf(&b, "%04d", dig)
			}
		}
	}
	if dscale > 0 {
		b.WriteByte('.')
		for i := 0; i < int(dscale); i += 4 {
			var dig int16
			if d >= 0 && d < ndigits {
				dig = digits[d]
			}
			d++
			if i+4 <= int(dscale) {
				fmt.Fprintf(&b, "%04d", dig)
			} else {
				s := fmt.Sprintf("%04d", dig)
				b.WriteString(s[:int(dscale)-i])
			}
		}
	}
	return b.String()
}

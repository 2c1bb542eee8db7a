package jsonenc

import (
	"bufio"
	"fmt"
	"time"

	"github.com/caslabs/casql/internal/wire"
)

// pgEpoch is the reference instant every date/time wire value is relative
// to: 2000-01-01 UTC. Arithmetic from here is plain proleptic Gregorian —
// Go's time package never switches calendars, so adding days/microseconds
// this far from the Unix epoch still lands on the same date Postgres
// computes for ancient BC dates.
var pgEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// formatYear writes y zero-padded to at least 4 digits, astronomical-year
// signed (year 0 = 1 BC, as spec.md §4.8 requires — "-4712" for 4713 BC).
func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("-%04d", -y)
	}
	return fmt.Sprintf("%04d", y)
}

func writeDate(out *bufio.Writer, r *wire.BinaryReader) error {
	days, err := r.Int32()
	if err != nil {
		return err
	}
	t := pgEpoch.AddDate(0, 0, int(days))
	y, m, d := t.Date()
	_, err = fmt.Fprintf(out, `"%s-%02d-%02d"`, formatYear(y), int(m), d)
	return err
}

// splitClock decomposes micros (all of one sign) into hours, minutes,
// whole seconds and a remaining microsecond fraction, each carrying the
// same sign as micros.
func splitClock(micros int64) (h, m, s int64, fracMicros int64) {
	totalSeconds := micros / 1_000_000
	fracMicros = micros % 1_000_000
	h = totalSeconds / 3600
	rem := totalSeconds % 3600
	m = rem / 60
	s = rem % 60
	return
}

func writeClockTime(out *bufio.Writer, micros int64) error {
	h, m, s, frac := splitClock(micros)
	if frac != 0 {
		if frac < 0 {
			frac = -frac
		}
		_, err := fmt.Fprintf(out, "%02d:%02d:%02d.%06d", h, m, s, frac)
		return err
	}
	_, err := fmt.Fprintf(out, "%02d:%02d:%02d", h, m, s)
	return err
}

func writeTimeUnzoned(out *bufio.Writer, r *wire.BinaryReader) error {
	micros, err := r.Int64()
	if err != nil {
		return err
	}
	if _, err := out.WriteString(`"`); err != nil {
		return err
	}
	if err := writeClockTime(out, micros); err != nil {
		return err
	}
	_, err = out.WriteString(`"`)
	return err
}

func writeTimeZoned(out *bufio.Writer, r *wire.BinaryReader) error {
	micros, err := r.Int64()
	if err != nil {
		return err
	}
	offsetSecs, err := r.Int32()
	if err != nil {
		return err
	}
	// Postgres stores the timetz zone as the negation of the actual UTC
	// offset on the wire.
	actual := -int(offsetSecs)
	if _, err := out.WriteString(`"`); err != nil {
		return err
	}
	if err := writeClockTime(out, micros); err != nil {
		return err
	}
	sign := "+"
	if actual < 0 {
		sign = "-"
		actual = -actual
	}
	oh, om, os := actual/3600, (actual/60)%60, actual%60
	if os != 0 {
		_, err = fmt.Fprintf(out, "%s%02d:%02d:%02d\"", sign, oh, om, os)
	} else {
		_, err = fmt.Fprintf(out, "%s%02d:%02d\"", sign, oh, om)
	}
	return err
}

func writeTimestamp(out *bufio.Writer, r *wire.BinaryReader) error {
	micros, err := r.Int64()
	if err != nil {
		return err
	}
	days := micros / 86_400_000_000
	rem := micros % 86_400_000_000
	if rem < 0 {
		rem += 86_400_000_000
		days--
	}
	date := pgEpoch.AddDate(0, 0, int(days))
	y, m, d := date.Date()
	if _, err := fmt.Fprintf(out, `"%s-%02d-%02dT`, formatYear(y), int(m), d); err != nil {
		return err
	}
	if err := writeClockTime(out, rem); err != nil {
		return err
	}
	_, err = out.WriteString(`Z"`)
	return err
}

// writeInterval writes an ISO-8601 duration, folding months into years
// (÷12) per spec.md §4.8. Every component's sign is independent — each is
// derived from the same-signed wire field it came from (months, days, or
// the microseconds total), matching the literal per-field signs Postgres
// itself stores rather than re-deriving a single overall sign.
func writeInterval(out *bufio.Writer, r *wire.BinaryReader) error {
	micros, err := r.Int64()
	if err != nil {
		return err
	}
	days, err := r.Int32()
	if err != nil {
		return err
	}
	months, err := r.Int32()
	if err != nil {
		return err
	}

	years := months / 12
	remMonths := months % 12

	if _, err := out.WriteString(`"P`); err != nil {
		return err
	}
	any := false
	if years != 0 {
		if _, err := fmt.Fprintf(out, "%dY", years); err != nil {
			return err
		}
		any = true
	}
	if remMonths != 0 {
		if _, err := fmt.Fprintf(out, "%dM", remMonths); err != nil {
			return err
		}
		any = true
	}
	if days != 0 {
		if _, err := fmt.Fprintf(out, "%dD", days); err != nil {
			return err
		}
		any = true
	}
	if micros != 0 {
		h, m, s, frac := splitClock(micros)
		if _, err := out.WriteString("T"); err != nil {
			return err
		}
		if h != 0 {
			if _, err := fmt.Fprintf(out, "%dH", h); err != nil {
				return err
			}
		}
		if m != 0 {
			if _, err := fmt.Fprintf(out, "%dM", m); err != nil {
				return err
			}
		}
		if s != 0 || frac != 0 || (h == 0 && m == 0) {
			if frac != 0 {
				f := frac
				if f < 0 {
					f = -f
				}
				sign := ""
				if s == 0 && frac < 0 {
					sign = "-"
				}
				if _, err := fmt.Fprintf(out, "%s%d.%06dS", sign, s, f); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(out, "%dS", s); err != nil {
					return err
				}
			}
		}
		any = true
	}
	if !any {
		if _, err := out.WriteString("0D"); err != nil {
			return err
		}
	}
	_, err = out.WriteString(`"`)
	return err
}

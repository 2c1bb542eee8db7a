// Package jsonenc is the JsonWriter and its per-type serializers
// (spec.md §4.8-4.9): transcoding one binary column value at a time into
// the output sink, brackets and all, so a result set is never buffered in
// full (spec.md §5).
package jsonenc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/caslabs/casql/internal/casqlerr"
	"github.com/caslabs/casql/internal/resolve"
	"github.com/caslabs/casql/internal/wire"
)

// Writer brackets a result set with `[`…`]`, comma-separating rows, and
// each row with `{`…`}`, comma-separating `"name":value` fields — the exact
// shape spec.md §4.8 describes. It is flushed exactly once, at query
// completion (spec.md §5); a SIGPIPE while writing is the caller's concern
// (casqlerr.IoBrokenPipe), not this type's.
type Writer struct {
	out     *bufio.Writer
	started bool
}

// New wraps sink in a buffered writer sized for typical row throughput.
func New(sink io.Writer) *Writer {
	return &Writer{out: bufio.NewWriterSize(sink, 64*1024)}
}

// Open writes the opening `[` of the result array. Call once before the
// first row.
func (w *Writer) Open() error {
	_, err := w.out.WriteString("[")
	return wrapIO(err)
}

// Close writes the closing `]` followed by a single newline and flushes the
// sink exactly once.
func (w *Writer) Close() error {
	if _, err := w.out.WriteString("]\n"); err != nil {
		return wrapIO(err)
	}
	return wrapIO(w.out.Flush())
}

// Row writes one row given its Fields (in RowDescription order) and the
// already-resolved Serializer for each field, pulling each value from row
// in turn.
func (w *Writer) Row(fields []wire.Field, serializers []resolve.Serializer, row *wire.DataRow, resolver *resolve.TypeResolver) error {
	if w.started {
		if _, err := w.out.WriteString(","); err != nil {
			return wrapIO(err)
		}
	}
	w.started = true
	if _, err := w.out.WriteString("{"); err != nil {
		return wrapIO(err)
	}
	for i, f := range fields {
		if i > 0 {
			if _, err := w.out.WriteString(","); err != nil {
				return wrapIO(err)
			}
		}
		if err := writeJSONString(w.out, f.Name); err != nil {
			return err
		}
		if _, err := w.out.WriteString(":"); err != nil {
			return wrapIO(err)
		}
		value, isNull, err := row.Next()
		if err != nil {
			return casqlerr.Wrap(casqlerr.ProtocolError, err)
		}
		if isNull {
			if _, err := w.out.WriteString("null"); err != nil {
				return wrapIO(err)
			}
			continue
		}
		if err := WriteValue(w.out, serializers[i], value, resolver); err != nil {
			return err
		}
	}
	_, err := w.out.WriteString("}")
	return wrapIO(err)
}

func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EPIPE) {
		return casqlerr.Wrap(casqlerr.IoBrokenPipe, err)
	}
	return casqlerr.Wrap(casqlerr.JsonError, err)
}

func writeJSONString(out *bufio.Writer, s string) error {
	if _, err := out.WriteString(`"`); err != nil {
		return wrapIO(err)
	}
	if err := escapeString(out, s); err != nil {
		return err
	}
	_, err := out.WriteString(`"`)
	return wrapIO(err)
}

// escapeString writes s's bytes JSON-escaped per spec.md §4.8's String
// serializer rule: backslash, quote, the three named control characters,
// and every other control byte below 0x20 via \u00XX.
func escapeString(out *bufio.Writer, s string) error {
	for _, r := range s {
		switch r {
		case '\\':
			if _, err := out.WriteString(`\\`); err != nil {
				return wrapIO(err)
			}
		case '"':
			if _, err := out.WriteString(`\"`); err != nil {
				return wrapIO(err)
			}
		case '\n':
			if _, err := out.WriteString(`\n`); err != nil {
				return wrapIO(err)
			}
		case '\r':
			if _, err := out.WriteString(`\r`); err != nil {
				return wrapIO(err)
			}
		case '\t':
			if _, err := out.WriteString(`\t`); err != nil {
				return wrapIO(err)
			}
		default:
			if r < 0x20 {
				if _, err := fmt.Fprintf(out, `\u%04x`, r); err != nil {
					return wrapIO(err)
				}
				continue
			}
			if _, err := out.WriteRune(r); err != nil {
				return wrapIO(err)
			}
		}
	}
	return nil
}

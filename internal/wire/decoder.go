package wire

import (
	"fmt"
)

// Field is one column of a RowDescription: its name and the oid of the type
// it will be returned as (always requested in binary format, per §4.2).
type Field struct {
	Name    string
	TypeOID uint32
}

// ParseRowDescription parses a RowDescription payload (tag and length
// already stripped by MessageStream) into its Field list.
func ParseRowDescription(payload []byte) ([]Field, error) {
	r := NewBinaryReader(payload)
	count, err := r.Int16()
	if err != nil {
		return nil, fmt.Errorf("wire: RowDescription field count: %w", err)
	}
	fields := make([]Field, 0, count)
	for i := int16(0); i < count; i++ {
		name, err := r.CString()
		if err != nil {
			return nil, fmt.Errorf("wire: RowDescription field name: %w", err)
		}
		if err := r.Skip(6); err != nil { // table oid (4) + column attnum (2)
			return nil, fmt.Errorf("wire: RowDescription skip: %w", err)
		}
		oid, err := r.Uint32()
		if err != nil {
			return nil, fmt.Errorf("wire: RowDescription type oid: %w", err)
		}
		if err := r.Skip(8); err != nil { // type size (2) + modifier (4) + format code (2)
			return nil, fmt.Errorf("wire: RowDescription skip: %w", err)
		}
		fields = append(fields, Field{Name: name, TypeOID: oid})
	}
	return fields, nil
}

// ErrorFields holds the raw field-code → value pairs of an ErrorResponse or
// NoticeResponse payload, keyed by the one-byte field codes PostgreSQL uses
// (e.g. 'S' severity, 'C' SQLSTATE, 'M' message).
type ErrorFields map[byte]string

// ParseErrorResponse parses an ErrorResponse/NoticeResponse payload into its
// field-code map.
func ParseErrorResponse(payload []byte) (ErrorFields, error) {
	r := NewBinaryReader(payload)
	fields := ErrorFields{}
	for {
		code, err := r.Byte()
		if err != nil {
			return nil, fmt.Errorf("wire: ErrorResponse field code: %w", err)
		}
		if code == 0 {
			return fields, nil
		}
		value, err := r.CString()
		if err != nil {
			return nil, fmt.Errorf("wire: ErrorResponse field value: %w", err)
		}
		fields[code] = value
	}
}

// Severity, SQLState and Message extract the three fields casql surfaces in
// its single-line failure report. A missing field yields "".
func (f ErrorFields) Severity() string { return f['S'] }
func (f ErrorFields) SQLState() string { return f['C'] }
func (f ErrorFields) Message() string  { return f['M'] }

// AuthSubCode reads the four-byte sub-code at the start of an Authentication
// message payload (offsets 5-8 of the full message, i.e. offset 0 of the
// payload MessageStream hands back once tag+length are stripped).
func AuthSubCode(payload []byte) (AuthCode, error) {
	r := NewBinaryReader(payload)
	v, err := r.Int32()
	if err != nil {
		return 0, fmt.Errorf("wire: Authentication sub-code: %w", err)
	}
	return AuthCode(v), nil
}

// MD5Salt reads the four salt bytes that follow an AuthMD5Password sub-code.
func MD5Salt(payload []byte) ([]byte, error) {
	r := NewBinaryReader(payload)
	if err := r.Skip(4); err != nil {
		return nil, fmt.Errorf("wire: Authentication salt: %w", err)
	}
	salt, err := r.Bytes(4)
	if err != nil {
		return nil, fmt.Errorf("wire: Authentication salt: %w", err)
	}
	return salt, nil
}

// DataRow walks a DataRow payload's value tuples in order: a value count,
// then that many (length, bytes) pairs where length -1 denotes NULL.
type DataRow struct {
	r     *BinaryReader
	count int16
	index int16
}

// NewDataRow begins walking a DataRow payload.
func NewDataRow(payload []byte) (*DataRow, error) {
	r := NewBinaryReader(payload)
	count, err := r.Int16()
	if err != nil {
		return nil, fmt.Errorf("wire: DataRow value count: %w", err)
	}
	return &DataRow{r: r, count: count}, nil
}

// Len returns the declared number of values in the row.
func (d *DataRow) Len() int { return int(d.count) }

// Next returns the next value's bytes, or (nil, true, nil) for NULL, or
// (nil, false, io.EOF-like sentinel) once every value has been consumed —
// callers loop exactly Len() times and never call Next() past that.
func (d *DataRow) Next() (value []byte, isNull bool, err error) {
	length, err := d.r.Int32()
	if err != nil {
		return nil, false, fmt.Errorf("wire: DataRow value length: %w", err)
	}
	d.index++
	if length < 0 {
		return nil, true, nil
	}
	value, err = d.r.Bytes(int(length))
	if err != nil {
		return nil, false, fmt.Errorf("wire: DataRow value bytes: %w", err)
	}
	return value, false, nil
}

// Package resolve implements TypeResolver (spec.md §4.7): mapping a
// RowDescription field's oid to the Serializer tag that will transcode its
// binary value into JSON, consulting DynamicTypes for the oids only known
// once a --postgis extension-oid prefetch (spec.md §4.5) has run.
package resolve

// Serializer names one transcoding routine in internal/jsonenc. The closed
// set matches spec.md §3's Serializer tag enum exactly.
type Serializer int

const (
	Unknown Serializer = iota
	Bool
	Int16
	Int32
	Int64
	Float32
	Float64
	BigNum
	Bytes
	BitString
	String
	Uuid
	Tid
	Json
	Date
	TimeUnzoned
	TimeZoned
	Timestamp
	Interval
	Point
	Line
	LineSegment
	Box
	Path
	Polygon
	Circle
	Inet
	MacAddr
	Ewkb
	Array
)

func (s Serializer) String() string {
	switch s {
	case Bool:
		return "Bool"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case BigNum:
		return "BigNum"
	case Bytes:
		return "Bytes"
	case BitString:
		return "BitString"
	case String:
		return "String"
	case Uuid:
		return "Uuid"
	case Tid:
		return "Tid"
	case Json:
		return "Json"
	case Date:
		return "Date"
	case TimeUnzoned:
		return "TimeUnzoned"
	case TimeZoned:
		return "TimeZoned"
	case Timestamp:
		return "Timestamp"
	case Interval:
		return "Interval"
	case Point:
		return "Point"
	case Line:
		return "Line"
	case LineSegment:
		return "LineSegment"
	case Box:
		return "Box"
	case Path:
		return "Path"
	case Polygon:
		return "Polygon"
	case Circle:
		return "Circle"
	case Inet:
		return "Inet"
	case MacAddr:
		return "MacAddr"
	case Ewkb:
		return "Ewkb"
	case Array:
		return "Array"
	default:
		return "Unknown"
	}
}

package jsonenc

import (
	"bufio"

	"github.com/caslabs/casql/internal/casqlerr"
	"github.com/caslabs/casql/internal/resolve"
	"github.com/caslabs/casql/internal/wire"
)

// WriteValue transcodes one non-NULL column value's raw binary bytes into
// JSON, dispatching on the Serializer tag TypeResolver assigned its oid.
func WriteValue(out *bufio.Writer, s resolve.Serializer, raw []byte, resolver *resolve.TypeResolver) error {
	r := wire.NewBinaryReader(raw)
	var err error
	switch s {
	case resolve.Bool:
		err = writeBool(out, r)
	case resolve.Int16:
		err = writeInt16(out, r)
	case resolve.Int32:
		err = writeInt32(out, r)
	case resolve.Int64:
		err = writeInt64(out, r)
	case resolve.Float32:
		err = writeFloat32(out, r)
	case resolve.Float64:
		err = writeFloat64(out, r)
	case resolve.BigNum:
		err = writeBigNum(out, r)
	case resolve.Bytes:
		err = writeBytes(out, raw)
	case resolve.BitString:
		err = writeBitString(out, r)
	case resolve.String:
		err = writeJSONString(out, string(raw))
	case resolve.Uuid:
		err = writeUUID(out, raw)
	case resolve.Tid:
		err = writeTid(out, r)
	case resolve.Date:
		err = writeDate(out, r)
	case resolve.TimeUnzoned:
		err = writeTimeUnzoned(out, r)
	case resolve.TimeZoned:
		err = writeTimeZoned(out, r)
	case resolve.Timestamp:
		err = writeTimestamp(out, r)
	case resolve.Interval:
		err = writeInterval(out, r)
	case resolve.Point:
		err = writePoint(out, r)
	case resolve.Line:
		err = writeLine(out, r)
	case resolve.LineSegment:
		err = writeLineSegment(out, r)
	case resolve.Box:
		err = writeBox(out, r)
	case resolve.Path:
		err = writePath(out, r, false)
	case resolve.Polygon:
		err = writePath(out, r, true)
	case resolve.Circle:
		err = writeCircle(out, r)
	case resolve.Inet:
		err = writeInet(out, r)
	case resolve.MacAddr:
		err = writeMacAddr(out, r, len(raw))
	case resolve.Json:
		err = writeJSONPassthrough(out, raw)
	case resolve.Array:
		err = writeArray(out, r, resolver)
	case resolve.Ewkb:
		err = writeEwkb(out, r)
	default:
		_, werr := out.WriteString(`"???"`)
		err = werr
	}
	if err == nil {
		return nil
	}
	if _, ok := err.(interface{ Unwrap() error }); ok {
		return err
	}
	return casqlerr.Wrap(casqlerr.JsonError, err)
}

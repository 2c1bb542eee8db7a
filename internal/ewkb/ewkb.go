// Package ewkb decodes PostGIS's EWKB wire encoding into GeoJSON text
// (spec.md §4.9), the one serializer the built-in oid table can't name
// statically — its oid is only known once the --postgis extension-oid
// prefetch has registered "geometry" in DynamicTypes.
package ewkb

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/caslabs/casql/internal/wire"
)

const (
	typePoint              = 1
	typeLineString         = 2
	typePolygon            = 3
	typeMultiPoint         = 4
	typeMultiLineString    = 5
	typeMultiPolygon       = 6
	typeGeometryCollection = 7

	flagSRID = 0x20
	flagM    = 0x40
	flagZ    = 0x80
)

var typeNames = map[uint32]string{
	typePoint:              "Point",
	typeLineString:         "LineString",
	typePolygon:            "Polygon",
	typeMultiPoint:         "MultiPoint",
	typeMultiLineString:    "MultiLineString",
	typeMultiPolygon:       "MultiPolygon",
	typeGeometryCollection: "GeometryCollection",
}

// Write decodes one EWKB geometry from r and writes its GeoJSON form to
// out. It is called once per top-level value; GeometryCollection members
// are decoded by recursive calls to writeGeometry below, Multi* members by
// writeMultiArray.
func Write(out *bufio.Writer, r *wire.BinaryReader) error {
	return writeGeometry(out, r)
}

func writeGeometry(out *bufio.Writer, r *wire.BinaryReader) error {
	le, err := readEndianness(r)
	if err != nil {
		return err
	}
	typeWord, err := readUint32(r, le)
	if err != nil {
		return err
	}
	baseType := typeWord & 0xFF
	flags := (typeWord >> 24) & 0xFF
	hasSRID := flags&flagSRID != 0
	hasZ := flags&flagZ != 0
	hasM := flags&flagM != 0
	dims := 2
	if hasZ {
		dims++
	}
	if hasM {
		dims++
	}

	var srid int32
	if hasSRID {
		srid, err = readInt32(r, le)
		if err != nil {
			return err
		}
	}

	name, ok := typeNames[baseType]
	if !ok {
		return fmt.Errorf("ewkb: unknown geometry type %d", baseType)
	}

	if _, err := fmt.Fprintf(out, `{"type":"%s"`, name); err != nil {
		return err
	}
	if hasSRID {
		if _, err := fmt.Fprintf(out, `,"crs":{"type":"name","properties":{"name":"EPSG:%s"}}`, strconv.Itoa(int(srid))); err != nil {
			return err
		}
	}

	if baseType == typeGeometryCollection {
		if _, err := out.WriteString(`,"geometries":[`); err != nil {
			return err
		}
		count, err := readInt32(r, le)
		if err != nil {
			return err
		}
		for i := int32(0); i < count; i++ {
			if i > 0 {
				if _, err := out.WriteString(","); err != nil {
					return err
				}
			}
			if err := writeGeometry(out, r); err != nil {
				return err
			}
		}
		_, err = out.WriteString("]}")
		return err
	}

	if _, err := out.WriteString(`,"coordinates":`); err != nil {
		return err
	}
	if err := writeCoordinates(out, r, baseType, dims, le); err != nil {
		return err
	}
	_, err = out.WriteString("}")
	return err
}

// writeCoordinates writes the "coordinates" value for every non-collection
// base type. Multi* types prefix a child count and each child carries its
// own full EWKB header (spec.md §4.9); Polygon/MultiPolygon rings only
// carry a point-count prefix, no header.
func writeCoordinates(out *bufio.Writer, r *wire.BinaryReader, baseType uint32, dims int, le bool) error {
	switch baseType {
	case typePoint:
		return writeTuple(out, r, dims, le)
	case typeLineString:
		return writePointArray(out, r, dims, le)
	case typePolygon:
		return writeRingArray(out, r, dims, le)
	case typeMultiPoint:
		return writeMultiArray(out, r, le, func(cdims int, cle bool) error { return writeTuple(out, r, cdims, cle) })
	case typeMultiLineString:
		return writeMultiArray(out, r, le, func(cdims int, cle bool) error { return writePointArray(out, r, cdims, cle) })
	case typeMultiPolygon:
		return writeMultiArray(out, r, le, func(cdims int, cle bool) error { return writeRingArray(out, r, cdims, cle) })
	default:
		return fmt.Errorf("ewkb: unsupported base type %d", baseType)
	}
}

// writeMultiArray writes a Multi* geometry's child count (in the parent's
// own endianness) followed by each child, every one prefixed with its own
// full EWKB header (endianness + type word, and an SRID word if that
// child's flags carry one, discarded — a child's CRS is the parent's).
// writeChild receives the child's own dims/endianness and writes that
// child's bare coordinate value.
func writeMultiArray(out *bufio.Writer, r *wire.BinaryReader, le bool, writeChild func(dims int, le bool) error) error {
	count, err := readInt32(r, le)
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
		cdims, cle, err := readChildHeader(r)
		if err != nil {
			return err
		}
		if err := writeChild(cdims, cle); err != nil {
			return err
		}
	}
	_, err = out.WriteString("]")
	return err
}

// readChildHeader parses a Multi* element's own EWKB header (endianness,
// type word, and an SRID word if flagged) and returns its coordinate
// dimensionality and endianness; the type word's base type and any SRID
// are not re-surfaced — dimensionality must already match the parent
// (spec.md §4.9) and the CRS object, if any, was already emitted from the
// parent's own header.
func readChildHeader(r *wire.BinaryReader) (dims int, le bool, err error) {
	le, err = readEndianness(r)
	if err != nil {
		return 0, false, err
	}
	typeWord, err := readUint32(r, le)
	if err != nil {
		return 0, false, err
	}
	flags := (typeWord >> 24) & 0xFF
	dims = 2
	if flags&flagZ != 0 {
		dims++
	}
	if flags&flagM != 0 {
		dims++
	}
	if flags&flagSRID != 0 {
		if _, err := readInt32(r, le); err != nil {
			return 0, false, err
		}
	}
	return dims, le, nil
}

func writeTuple(out *bufio.Writer, r *wire.BinaryReader, dims int, le bool) error {
	if _, err := out.WriteString("["); err != nil {
		return err
	}
	for i := 0; i < dims; i++ {
		if i > 0 {
			if _, err := out.WriteString(","); err != nil {
				return err
			}
		}
		v, err := readFloat64(r, le)
		if err != nil {
			return err
		}
		if _, err := out.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
	}
	_, err := out.WriteString("]")
	return err
}

func writePointArray(out *bufio.Writer, r *wire.BinaryReader, dims int, le bool) error {
	count, err := readInt32(r, le)
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
		if err := writeTuple(out, r, dims, le); err != nil {
			return err
		}
	}
	_, err = out.WriteString("]")
	return err
}

func writeRingArray(out *bufio.Writer, r *wire.BinaryReader, dims int, le bool) error {
	count, err := readInt32(r, le)
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
		if err := writePointArray(out, r, dims, le); err != nil {
			return err
		}
	}
	_, err = out.WriteString("]")
	return err
}

func readEndianness(r *wire.BinaryReader) (bool, error) {
	b, err := r.Byte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func readUint32(r *wire.BinaryReader, le bool) (uint32, error) {
	if le {
		return r.Uint32LE()
	}
	return r.Uint32()
}

func readInt32(r *wire.BinaryReader, le bool) (int32, error) {
	v, err := readUint32(r, le)
	return int32(v), err
}

func readFloat64(r *wire.BinaryReader, le bool) (float64, error) {
	if le {
		return r.Float64LE()
	}
	return r.Float64()
}

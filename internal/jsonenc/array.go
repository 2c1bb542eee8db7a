package jsonenc

import (
	"bufio"

	"github.com/caslabs/casql/internal/resolve"
	"github.com/caslabs/casql/internal/wire"
	"github.com/lib/pq/oid"
)

// writeArray decodes a Postgres array value's header (ndim, a null-flag
// nothing here needs, the element oid, then ndim dimension/lower-bound
// pairs) and writes nested JSON arrays, resolving the element Serializer
// once from the element oid and reusing it for every leaf value.
func writeArray(out *bufio.Writer, r *wire.BinaryReader, resolver *resolve.TypeResolver) error {
	ndim, err := r.Int32()
	if err != nil {
		return err
	}
	if _, err := r.Int32(); err != nil { // null-flag; NULLs are still marked per-element below
		return err
	}
	elemOID, err := r.Int32()
	if err != nil {
		return err
	}
	if ndim == 0 {
		_, err := out.WriteString("[]")
		return err
	}
	dims := make([]int32, ndim)
	for i := range dims {
		count, err := r.Int32()
		if err != nil {
			return err
		}
		if _, err := r.Int32(); err != nil { // lower bound
			return err
		}
		dims[i] = count
	}
	elemSerializer := resolver.Resolve(oid.Oid(elemOID))
	return writeArrayDim(out, r, dims, 0, elemSerializer, resolver)
}

func writeArrayDim(out *bufio.Writer, r *wire.BinaryReader, dims []int32, depth int, elem resolve.Serializer, resolver *resolve.TypeResolver) error {
	if _, err := out.WriteString("["); err != nil {
		return err
	}
	n := dims[depth]
	for i := int32(0); i < n; i++ {
		if i > 0 {
			if _, err := out.WriteString(","); err != nil {
				return err
			}
		}
		if depth == len(dims)-1 {
			length, err := r.Int32()
			if err != nil {
				return err
			}
			if length < 0 {
				if _, err := out.WriteString("null"); err != nil {
					return err
				}
				continue
			}
			value, err := r.Bytes(int(length))
			if err != nil {
				return err
			}
			if err := WriteValue(out, elem, value, resolver); err != nil {
				return err
			}
		} else {
			if err := writeArrayDim(out, r, dims, depth+1, elem, resolver); err != nil {
				return err
			}
		}
	}
	_, err := out.WriteString("]")
	return err
}

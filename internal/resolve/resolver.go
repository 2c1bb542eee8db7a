package resolve

import "github.com/lib/pq/oid"

// TypeResolver maps a RowDescription field's oid to the Serializer that
// will transcode it, consulting DynamicTypes for oids the static table
// doesn't know. Immutable once constructed: the static table never
// changes, and DynamicTypes is only written during connect.
type TypeResolver struct {
	dynamic *DynamicTypes
}

// New builds a TypeResolver. dynamic may be nil when --postgis was not
// requested; every oid lookup then simply misses the dynamic fallback.
func New(dynamic *DynamicTypes) *TypeResolver {
	return &TypeResolver{dynamic: dynamic}
}

// Resolve returns the Serializer for o. Unknown oids consult DynamicTypes;
// a registered name of "geometry" resolves to Ewkb. Everything else unknown
// resolves to Unknown, emitted as the literal JSON string "???".
func (t *TypeResolver) Resolve(o oid.Oid) Serializer {
	if s, ok := staticTable[o]; ok {
		return s
	}
	if t.dynamic != nil {
		if name, ok := t.dynamic.NameOf(o); ok && name == "geometry" {
			return Ewkb
		}
	}
	return Unknown
}

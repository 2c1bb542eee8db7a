package resolve

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lib/pq/oid"
)

// extensionTypeNames is the fixed set of PostGIS type names the extension-oid
// prefetch (spec.md §4.5) queries pg_type for.
var extensionTypeNames = []string{"geometry", "geography", "box2d", "box3d", "geometry_dump"}

// ExtensionTypeNames returns the names to embed in the prefetch query's
// `typname IN (...)` list.
func ExtensionTypeNames() []string { return extensionTypeNames }

// DynamicTypes is the process-local oid→typname mapping spec.md §3 names,
// populated once during connect and immutable thereafter. It wraps a
// *pgtype.Map the way the teacher's own examples/numeric/main.go registers
// extension types with pgx's ConnInfo/Map — RegisterType here gives every
// discovered oid a named pgtype.Type entry, so a future serializer needing
// pgx's own codecs (arrays of extension types, for instance) has one to
// build on, even though the EWKB transcoder itself decodes by hand.
type DynamicTypes struct {
	types *pgtype.Map
	byOID map[oid.Oid]string
}

// NewDynamicTypes returns an empty DynamicTypes; Register populates it from
// the prefetch query's DataRows.
func NewDynamicTypes() *DynamicTypes {
	return &DynamicTypes{types: pgtype.NewMap(), byOID: map[oid.Oid]string{}}
}

// Register records one (typname, oid) pair discovered by the prefetch
// query. Absence of rows for a given name is not an error (spec.md §4.5);
// callers simply never call Register for that name.
func (d *DynamicTypes) Register(typname string, o oid.Oid) {
	d.byOID[o] = typname
	d.types.RegisterType(&pgtype.Type{Name: typname, OID: uint32(o), Codec: &pgtype.BytesCodec{}})
}

// NameOf returns the registered type name for o, if any.
func (d *DynamicTypes) NameOf(o oid.Oid) (string, bool) {
	name, ok := d.byOID[o]
	return name, ok
}

package resolve

import (
	"testing"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/assert"
)

func TestResolveStaticBuiltins(t *testing.T) {
	r := New(nil)
	assert.Equal(t, Bool, r.Resolve(oid.T_bool))
	assert.Equal(t, Int64, r.Resolve(oid.T_int8))
	assert.Equal(t, BigNum, r.Resolve(oid.T_numeric))
	assert.Equal(t, Point, r.Resolve(oid.T_point))
}

func TestResolveUnknownWithoutDynamicTypes(t *testing.T) {
	r := New(nil)
	assert.Equal(t, Unknown, r.Resolve(oid.Oid(999999)))
}

func TestResolveDynamicGeometry(t *testing.T) {
	d := NewDynamicTypes()
	d.Register("geometry", oid.Oid(17071))
	r := New(d)
	assert.Equal(t, Ewkb, r.Resolve(oid.Oid(17071)))
}

package resolve

import "github.com/lib/pq/oid"

// staticTable is the well-known built-in oid→Serializer table from
// spec.md §4.7, keyed by the same oid.T_* constant family row.go used to
// describe RowDescription columns server-side. Array entries (int2vector,
// oidvector, and every typed array oid) all resolve to the generic Array
// serializer, which in turn resolves its element oid recursively.
var staticTable = map[oid.Oid]Serializer{
	oid.T_bool: Bool,

	oid.T_bytea: Bytes,

	oid.T_char:    String,
	oid.T_name:    String,
	oid.T_text:    String,
	oid.T_bpchar:  String,
	oid.T_varchar: String,

	oid.T_int8: Int64,
	oid.T_int2: Int16,

	oid.T_int2vector: Array,
	oid.T_oidvector:  Array,
	oid.T__int4:      Array,

	oid.T_int4:    Int32,
	oid.T_regproc: Int32,
	oid.T_oid:     Int32,
	oid.T_xid:     Int32,
	oid.T_cid:     Int32,

	oid.T_tid: Tid,

	oid.T_json:  Json,
	oid.T_jsonb: Json,

	oid.T_point:   Point,
	oid.T_lseg:    LineSegment,
	oid.T_path:    Path,
	oid.T_box:     Box,
	oid.T_polygon: Polygon,
	oid.T_line:    Line,
	oid.T_circle:  Circle,

	oid.T_float4: Float32,
	oid.T_float8: Float64,

	oid.T_date:        Date,
	oid.T_time:        TimeUnzoned,
	oid.T_timestamp:   Timestamp,
	oid.T_timestamptz: Timestamp,
	oid.T_interval:    Interval,
	oid.T_timetz:      TimeZoned,

	oid.T_bit:    BitString,
	oid.T_varbit: BitString,

	oid.T_numeric: BigNum,

	oid.T_uuid: Uuid,

	oid.T_cidr:     Inet,
	oid.T_inet:     Inet,
	oid.T_macaddr:  MacAddr,
	oid.T_macaddr8: MacAddr,
}

// elementOf lists the typed array oids (the "_<type>" array oid family:
// 1000-1022 for the built-ins, plus the handful of commonly queried ones),
// each with its element oid; init registers every key as an Array entry in
// staticTable. The Array transcoder itself takes the element oid from each
// array value's own header, not from this map.
var elementOf = map[oid.Oid]oid.Oid{
	oid.T__bool:        oid.T_bool,
	oid.T__bytea:       oid.T_bytea,
	oid.T__char:        oid.T_char,
	oid.T__name:         oid.T_name,
	oid.T__int2:        oid.T_int2,
	oid.T__int4:        oid.T_int4,
	oid.T__int8:        oid.T_int8,
	oid.T__text:        oid.T_text,
	oid.T__bpchar:      oid.T_bpchar,
	oid.T__varchar:     oid.T_varchar,
	oid.T__float4:      oid.T_float4,
	oid.T__float8:      oid.T_float8,
	oid.T__numeric:     oid.T_numeric,
	oid.T__uuid:        oid.T_uuid,
	oid.T__date:        oid.T_date,
	oid.T__timestamp:   oid.T_timestamp,
	oid.T__timestamptz: oid.T_timestamptz,
	oid.T__json:        oid.T_json,
	oid.T__jsonb:       oid.T_jsonb,
}

func init() {
	for arr := range elementOf {
		staticTable[arr] = Array
	}
}

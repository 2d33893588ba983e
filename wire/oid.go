package wire

import (
	"fmt"

	"github.com/lib/pq/oid"
)

// TypeMismatchError reports a typed accessor used against a column of a
// different wire type. It names the accessor matching the column's actual
// type. Raised as a panic: requesting the wrong type is a caller bug, never
// a data condition.
type TypeMismatchError struct {
	Requested oid.Oid
	Actual    oid.Oid
}

func (e *TypeMismatchError) Error() string {
	accessor, ok := accessorByOid[e.Actual]
	if !ok {
		// Unknown types can still be fetched as raw text.
		accessor = "Row.String"
	}
	return fmt.Sprintf("pg: column has type oid %d, not %d; use %s", e.Actual, e.Requested, accessor)
}

var accessorByOid = map[oid.Oid]string{
	oid.T_bool:        "Row.Bool",
	oid.T_bytea:       "Row.Bytes",
	oid.T_char:        "Row.Char",
	oid.T_name:        "Row.String",
	oid.T_int8:        "Row.Int64",
	oid.T_int2:        "Row.Int16",
	oid.T_int4:        "Row.Int32",
	oid.T_text:        "Row.String",
	oid.T_float4:      "Row.Float32",
	oid.T_float8:      "Row.Float64",
	oid.T_bpchar:      "Row.String",
	oid.T_varchar:     "Row.String",
	oid.T_date:        "Row.Date",
	oid.T_time:        "Row.Time",
	oid.T_timestamp:   "Row.Timestamp",
	oid.T_timestamptz: "Row.TimestampTz",
	oid.T_interval:    "Row.Interval",
	oid.T_timetz:      "Row.TimeTz",
}

// AnyOid disables the type check for a single read. Used by the text
// accessors, which accept any column type.
const AnyOid oid.Oid = 0

// CheckOid verifies that the column's advertised type matches the type the
// caller asked for. With strict unset the check is bypassed; both profiles
// share this one code path.
func CheckOid(requested, actual oid.Oid, strict bool) {
	if !strict || requested == AnyOid || requested == actual {
		return
	}
	panic(&TypeMismatchError{Requested: requested, Actual: actual})
}

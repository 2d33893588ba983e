package libpqmxx

import (
	"fmt"

	"github.com/lib/pq/oid"

	"github.com/pferdinand/libpqmxx/driver"
	"github.com/pferdinand/libpqmxx/wire"
)

// Row is a read-only view over the single row currently held by its stream.
// The same Row is rebound in place on every advance, so anything obtained
// from it is valid only until the stream moves on; copy what must outlive
// the current row.
//
// Null columns decode to the type's zero value. Requesting a type that does
// not match the column's wire type panics with a wire.TypeMismatchError
// naming the accessor to use (unless type checks are disabled on the
// stream).
type Row struct {
	result *Result
}

func (row *Row) raw() driver.RawResult {
	raw := row.result.raw
	if raw == nil {
		panic("pg: no result attached to the row")
	}
	return raw
}

// Num returns the 1-based ordinal of the current row in the stream.
func (row *Row) Num() uint64 {
	return row.result.num
}

// IsNull reports whether the server sent the column as null.
func (row *Row) IsNull(col int) bool {
	return row.raw().IsNull(col)
}

// Name returns the column's declared name. The index must be valid.
func (row *Row) Name(col int) string {
	raw := row.raw()
	if col < 0 || col >= raw.NumColumns() {
		panic(fmt.Sprintf("pg: column index %d out of range [0, %d)", col, raw.NumColumns()))
	}
	return raw.ColumnName(col)
}

// NumColumns returns the number of columns in the current result.
func (row *Row) NumColumns() int {
	return row.raw().NumColumns()
}

// value verifies the column's type tag and returns its raw bytes, or false
// when the column is null.
func (row *Row) value(col int, requested oid.Oid) ([]byte, bool) {
	raw := row.raw()
	wire.CheckOid(requested, raw.ColumnOid(col), row.result.typeChecks)
	if raw.IsNull(col) {
		return nil, false
	}
	return raw.Value(col), true
}

func (row *Row) Bool(col int) bool {
	buf, ok := row.value(col, oid.T_bool)
	if !ok {
		return false
	}
	return wire.NewCursor(buf).Bool()
}

func (row *Row) Int16(col int) int16 {
	buf, ok := row.value(col, oid.T_int2)
	if !ok {
		return 0
	}
	return wire.NewCursor(buf).Int16()
}

func (row *Row) Int32(col int) int32 {
	buf, ok := row.value(col, oid.T_int4)
	if !ok {
		return 0
	}
	return wire.NewCursor(buf).Int32()
}

func (row *Row) Int64(col int) int64 {
	buf, ok := row.value(col, oid.T_int8)
	if !ok {
		return 0
	}
	return wire.NewCursor(buf).Int64()
}

func (row *Row) Float32(col int) float32 {
	buf, ok := row.value(col, oid.T_float4)
	if !ok {
		return 0
	}
	return wire.NewCursor(buf).Float32()
}

func (row *Row) Float64(col int) float64 {
	buf, ok := row.value(col, oid.T_float8)
	if !ok {
		return 0
	}
	return wire.NewCursor(buf).Float64()
}

// String copies the column's raw bytes as UTF-8 text. It is the catch-all
// accessor: text, varchar, char(n), name and any type without a dedicated
// accessor can be fetched through it, so no type tag is verified.
func (row *Row) String(col int) string {
	buf, ok := row.value(col, wire.AnyOid)
	if !ok {
		return ""
	}
	return string(buf)
}

// Char returns the single byte of a "char" column.
func (row *Row) Char(col int) byte {
	buf, ok := row.value(col, oid.T_char)
	if !ok {
		return 0
	}
	if len(buf) != 1 {
		protocolViolation(`"char" column has length %d, want 1`, len(buf))
	}
	return buf[0]
}

// Bytes copies the raw bytes of a bytea column. Null decodes to nil.
func (row *Row) Bytes(col int) []byte {
	buf, ok := row.value(col, oid.T_bytea)
	if !ok {
		return nil
	}
	return append([]byte(nil), buf...)
}

func (row *Row) Date(col int) wire.Date {
	buf, ok := row.value(col, oid.T_date)
	if !ok {
		return 0
	}
	return wire.ReadDate(wire.NewCursor(buf))
}

func (row *Row) Time(col int) wire.Time {
	buf, ok := row.value(col, oid.T_time)
	if !ok {
		return 0
	}
	return wire.ReadTime(wire.NewCursor(buf))
}

func (row *Row) Timestamp(col int) wire.Timestamp {
	buf, ok := row.value(col, oid.T_timestamp)
	if !ok {
		return 0
	}
	return wire.ReadTimestamp(wire.NewCursor(buf))
}

func (row *Row) TimestampTz(col int) wire.TimestampTz {
	buf, ok := row.value(col, oid.T_timestamptz)
	if !ok {
		return 0
	}
	return wire.ReadTimestampTz(wire.NewCursor(buf))
}

func (row *Row) TimeTz(col int) wire.TimeTz {
	buf, ok := row.value(col, oid.T_timetz)
	if !ok {
		return wire.TimeTz{}
	}
	return wire.ReadTimeTz(wire.NewCursor(buf))
}

func (row *Row) Interval(col int) wire.Interval {
	buf, ok := row.value(col, oid.T_interval)
	if !ok {
		return wire.Interval{}
	}
	return wire.ReadInterval(wire.NewCursor(buf))
}

// array fetches a one-dimensional array column. The element type tag inside
// the payload is verified against elem; the column-level array oid is not
// checked, matching the scalar accessors' per-element contract.
func array[T any](row *Row, col int, elem oid.Oid, def T, read func(*wire.Cursor, int) T) []T {
	raw := row.raw()
	if raw.IsNull(col) {
		return nil
	}
	return wire.ReadArray(raw.Value(col), elem, def, row.result.typeChecks, read)
}

func (row *Row) BoolArray(col int) []bool {
	return array(row, col, oid.T_bool, false, wire.ElemBool)
}

func (row *Row) Int16Array(col int) []int16 {
	return array(row, col, oid.T_int2, 0, wire.ElemInt16)
}

func (row *Row) Int32Array(col int) []int32 {
	return array(row, col, oid.T_int4, 0, wire.ElemInt32)
}

func (row *Row) Int64Array(col int) []int64 {
	return array(row, col, oid.T_int8, 0, wire.ElemInt64)
}

func (row *Row) Float32Array(col int) []float32 {
	return array(row, col, oid.T_float4, 0, wire.ElemFloat32)
}

func (row *Row) Float64Array(col int) []float64 {
	return array(row, col, oid.T_float8, 0, wire.ElemFloat64)
}

// StringArray decodes an array of any text-like element type; like String
// it verifies no element tag.
func (row *Row) StringArray(col int) []string {
	return array(row, col, wire.AnyOid, "", wire.ElemString)
}

package wire

import (
	"testing"

	"github.com/jackc/pgio"
	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArray assembles an array payload the way the server sends it:
// header, then length-prefixed elements with -1 marking nulls.
func buildArray(ndim int32, elem oid.Oid, elems ...[]byte) []byte {
	var buf []byte
	buf = pgio.AppendInt32(buf, ndim)
	buf = pgio.AppendInt32(buf, 0) // data offset
	buf = pgio.AppendInt32(buf, int32(elem))
	buf = pgio.AppendInt32(buf, int32(len(elems)))
	buf = pgio.AppendInt32(buf, 1) // lower bound
	for _, e := range elems {
		if e == nil {
			buf = pgio.AppendInt32(buf, -1)
			continue
		}
		buf = pgio.AppendInt32(buf, int32(len(e)))
		buf = append(buf, e...)
	}
	return buf
}

func TestReadArrayInt32(t *testing.T) {
	buf := buildArray(1, oid.T_int4,
		pgio.AppendInt32(nil, 1),
		nil,
		pgio.AppendInt32(nil, 3),
	)
	got := ReadArray(buf, oid.T_int4, int32(-7), true, ElemInt32)
	assert.Equal(t, []int32{1, -7, 3}, got)
}

func TestReadArrayPreservesOrder(t *testing.T) {
	elems := make([][]byte, 100)
	for i := range elems {
		elems[i] = pgio.AppendInt16(nil, int16(i))
	}
	buf := buildArray(1, oid.T_int2, elems...)
	got := ReadArray(buf, oid.T_int2, int16(0), true, ElemInt16)
	require.Len(t, got, 100)
	for i, v := range got {
		require.Equal(t, int16(i), v)
	}
}

func TestReadArrayStrings(t *testing.T) {
	buf := buildArray(1, oid.T_text, []byte("a"), nil, []byte("bc"))
	got := ReadArray(buf, AnyOid, "", true, ElemString)
	assert.Equal(t, []string{"a", "", "bc"}, got)
}

func TestReadArrayTwoDimensions(t *testing.T) {
	buf := buildArray(2, oid.T_int4, pgio.AppendInt32(nil, 1))
	defer func() {
		err, ok := recover().(ProtocolError)
		require.True(t, ok, "want a ProtocolError panic")
		assert.Contains(t, err.Error(), "dimensionality 2")
	}()
	ReadArray(buf, oid.T_int4, int32(0), true, ElemInt32)
}

func TestReadArrayElementTypeMismatch(t *testing.T) {
	buf := buildArray(1, oid.T_int8, pgio.AppendInt64(nil, 1))
	assert.PanicsWithError(t,
		(&TypeMismatchError{Requested: oid.T_int4, Actual: oid.T_int8}).Error(),
		func() {
			ReadArray(buf, oid.T_int4, int32(0), true, ElemInt32)
		})

	// Same payload with checks off decodes through ElemInt64.
	got := ReadArray(buf, oid.T_int4, int64(0), false, ElemInt64)
	assert.Equal(t, []int64{1}, got)
}

func TestReadArrayElementSizeMismatch(t *testing.T) {
	buf := buildArray(1, oid.T_int4, pgio.AppendInt16(nil, 1))
	assert.Panics(t, func() {
		ReadArray(buf, oid.T_int4, int32(0), true, ElemInt32)
	})
}

func TestCheckOidDiagnosticNamesAccessor(t *testing.T) {
	err := &TypeMismatchError{Requested: oid.T_int4, Actual: oid.T_text}
	assert.Contains(t, err.Error(), "Row.String")

	err = &TypeMismatchError{Requested: oid.T_text, Actual: oid.T_int8}
	assert.Contains(t, err.Error(), "Row.Int64")

	// Unknown types fall back to the text accessor.
	err = &TypeMismatchError{Requested: oid.T_int4, Actual: oid.Oid(600)}
	assert.Contains(t, err.Error(), "Row.String")
}

func TestCheckOidBypass(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOid(oid.T_int4, oid.T_text, false)
		CheckOid(AnyOid, oid.T_text, true)
		CheckOid(oid.T_int4, oid.T_int4, true)
	})
}

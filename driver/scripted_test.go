package driver

import (
	"testing"

	"github.com/jackc/pgproto3/v2"
	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTuples(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"UPDATE 5", "5"},
		{"DELETE 0", "0"},
		{"INSERT 0 1", "1"},
		{"SELECT 12", "12"},
		{"CREATE TABLE", ""},
		{"BEGIN", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CommandTuples(tt.tag), "tag=%q", tt.tag)
	}
}

func TestScriptedSelect(t *testing.T) {
	conn := NewScriptedConn(
		&pgproto3.RowDescription{Fields: []pgproto3.FieldDescription{
			{Name: []byte("id"), DataTypeOID: uint32(oid.T_int4)},
		}},
		&pgproto3.DataRow{Values: [][]byte{{0, 0, 0, 1}}},
		&pgproto3.DataRow{Values: [][]byte{nil}},
		&pgproto3.CommandComplete{CommandTag: []byte("SELECT 2")},
	)

	r := conn.NextRawResult()
	require.NotNil(t, r)
	assert.Equal(t, SingleTuple, r.Status())
	assert.Equal(t, 1, r.NumRows())
	assert.Equal(t, 1, r.NumColumns())
	assert.Equal(t, "id", r.ColumnName(0))
	assert.Equal(t, oid.T_int4, r.ColumnOid(0))
	assert.False(t, r.IsNull(0))
	assert.Equal(t, []byte{0, 0, 0, 1}, r.Value(0))

	r = conn.NextRawResult()
	require.NotNil(t, r)
	assert.Equal(t, SingleTuple, r.Status())
	assert.True(t, r.IsNull(0))

	r = conn.NextRawResult()
	require.NotNil(t, r)
	assert.Equal(t, TuplesOK, r.Status())
	assert.Equal(t, 0, r.NumRows())
	assert.Equal(t, "2", r.AffectedRows())

	assert.Nil(t, conn.NextRawResult())
}

func TestScriptedCommandsAndErrors(t *testing.T) {
	conn := NewScriptedConn(
		&pgproto3.CommandComplete{CommandTag: []byte("INSERT 0 3")},
		&pgproto3.ErrorResponse{Message: "deadlock detected"},
	)

	r := conn.NextRawResult()
	require.NotNil(t, r)
	assert.Equal(t, CommandOK, r.Status())
	assert.Equal(t, "3", r.AffectedRows())
	assert.Empty(t, conn.LastError())

	r = conn.NextRawResult()
	require.NotNil(t, r)
	assert.Equal(t, FatalError, r.Status())
	assert.Equal(t, "deadlock detected", conn.LastError())
}

func TestScriptedCancelDropsPendingRows(t *testing.T) {
	conn := NewScriptedConn(
		&pgproto3.RowDescription{Fields: []pgproto3.FieldDescription{
			{Name: []byte("n"), DataTypeOID: uint32(oid.T_int4)},
		}},
		&pgproto3.DataRow{Values: [][]byte{{0, 0, 0, 1}}},
		&pgproto3.DataRow{Values: [][]byte{{0, 0, 0, 2}}},
		&pgproto3.DataRow{Values: [][]byte{{0, 0, 0, 3}}},
		&pgproto3.CommandComplete{CommandTag: []byte("SELECT 3")},
	)

	require.Equal(t, SingleTuple, conn.NextRawResult().Status())
	require.NoError(t, conn.Cancel())
	assert.True(t, conn.Canceled())

	// The unserved rows are gone; the terminal result remains.
	r := conn.NextRawResult()
	require.NotNil(t, r)
	assert.Equal(t, TuplesOK, r.Status())
	assert.Nil(t, conn.NextRawResult())
}

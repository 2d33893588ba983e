package libpqmxx_test

import (
	"fmt"

	"github.com/jackc/pgio"
	"github.com/jackc/pgproto3/v2"
	"github.com/lib/pq/oid"

	"github.com/pferdinand/libpqmxx"
	"github.com/pferdinand/libpqmxx/driver"
)

func Example() {
	// A live connection would come from driver/pgconndriver; the scripted
	// connection replays the same backend messages in memory.
	conn := driver.NewScriptedConn(
		&pgproto3.RowDescription{Fields: []pgproto3.FieldDescription{
			{Name: []byte("id"), DataTypeOID: uint32(oid.T_int4)},
			{Name: []byte("name"), DataTypeOID: uint32(oid.T_text)},
		}},
		&pgproto3.DataRow{Values: [][]byte{pgio.AppendInt32(nil, 1), []byte("ada")}},
		&pgproto3.DataRow{Values: [][]byte{pgio.AppendInt32(nil, 2), nil}},
		&pgproto3.CommandComplete{CommandTag: []byte("SELECT 2")},
	)

	res := libpqmxx.New(conn)
	for res.Next() {
		row := res.Row()
		fmt.Printf("%d %q null=%v\n", row.Int32(0), row.String(1), row.IsNull(1))
	}
	if err := res.Err(); err != nil {
		fmt.Println("query failed:", err)
	}
	res.Drain()

	// Output:
	// 1 "ada" null=false
	// 2 "" null=true
}

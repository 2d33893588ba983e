// Package pgconndriver adapts a live PostgreSQL connection, via
// github.com/jackc/pgconn, to the driver.Conn contract consumed by the
// result stream. Queries are issued through the extended protocol with
// binary result format, which is the representation the wire package
// decodes.
package pgconndriver

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgproto3/v2"
	"github.com/lib/pq/oid"
	"github.com/pkg/errors"

	"github.com/pferdinand/libpqmxx/driver"
)

var binaryResults = []int16{1}

// Conn drives one query at a time over a *pgconn.PgConn. It is not safe for
// concurrent use, matching the synchronous pull model of the stream layer.
type Conn struct {
	ctx     context.Context
	pg      *pgconn.PgConn
	rr      *pgconn.ResultReader
	fields  []pgproto3.FieldDescription
	lastErr string
}

func New(ctx context.Context, pg *pgconn.PgConn) *Conn {
	return &Conn{ctx: ctx, pg: pg}
}

// Query issues a single statement whose results will be pulled through
// NextRawResult. The previous query must have been fully consumed or
// drained first.
func (c *Conn) Query(sql string) error {
	if c.rr != nil {
		return errors.New("pgconndriver: previous query still has pending results")
	}
	c.fields = nil
	c.rr = c.pg.ExecParams(c.ctx, sql, nil, nil, nil, binaryResults)
	return nil
}

func (c *Conn) NextRawResult() driver.RawResult {
	if c.rr == nil {
		return nil
	}
	if c.rr.NextRow() {
		c.fields = c.rr.FieldDescriptions()
		return &rawResult{
			status: driver.SingleTuple,
			fields: c.fields,
			values: c.rr.Values(),
		}
	}
	c.fields = c.rr.FieldDescriptions()
	tag, err := c.rr.Close()
	c.rr = nil
	if err != nil {
		c.lastErr = err.Error()
		return &rawResult{status: driver.FatalError}
	}
	if len(c.fields) > 0 {
		return &rawResult{status: driver.TuplesOK, fields: c.fields, tag: tag.String()}
	}
	return &rawResult{status: driver.CommandOK, tag: tag.String()}
}

func (c *Conn) Cancel() error {
	return errors.Wrap(c.pg.CancelRequest(c.ctx), "pgconndriver: cancel request")
}

func (c *Conn) LastError() string {
	return c.lastErr
}

type rawResult struct {
	status driver.Status
	fields []pgproto3.FieldDescription
	values [][]byte
	tag    string
}

func (r *rawResult) Status() driver.Status {
	return r.status
}

func (r *rawResult) NumRows() int {
	if r.status == driver.SingleTuple {
		return 1
	}
	return 0
}

func (r *rawResult) NumColumns() int {
	return len(r.fields)
}

func (r *rawResult) ColumnName(col int) string {
	return string(r.fields[col].Name)
}

func (r *rawResult) ColumnOid(col int) oid.Oid {
	return oid.Oid(r.fields[col].DataTypeOID)
}

func (r *rawResult) IsNull(col int) bool {
	return r.values[col] == nil
}

func (r *rawResult) Value(col int) []byte {
	return r.values[col]
}

func (r *rawResult) AffectedRows() string {
	return driver.CommandTuples(r.tag)
}

package driver

import (
	"github.com/jackc/pgproto3/v2"
	"github.com/lib/pq/oid"
)

// ScriptedConn is an in-memory Conn replaying a canned sequence of backend
// protocol messages, the way libpq surfaces them in single-row mode: every
// DataRow becomes its own raw result, a row-returning statement ends with a
// zero-row tuples-ok result, and a plain command acknowledgment becomes a
// command-ok result.
type ScriptedConn struct {
	pending  []*scriptedResult
	lastErr  string
	canceled bool
}

// NewScriptedConn builds a connection whose first query yields the results
// described by script. Use Queue to issue follow-up queries.
func NewScriptedConn(script ...pgproto3.BackendMessage) *ScriptedConn {
	c := &ScriptedConn{}
	c.Queue(script...)
	return c
}

// Queue appends the results of one more query to the connection. It mirrors
// sending a new query string on a real connection, so it should only be
// called once the previous query has been fully consumed or drained.
func (c *ScriptedConn) Queue(script ...pgproto3.BackendMessage) {
	var fields []pgproto3.FieldDescription
	for _, msg := range script {
		switch m := msg.(type) {
		case *pgproto3.RowDescription:
			fields = m.Fields
		case *pgproto3.DataRow:
			values := make([][]byte, len(m.Values))
			copy(values, m.Values)
			c.pending = append(c.pending, &scriptedResult{
				status: SingleTuple,
				fields: fields,
				values: values,
			})
		case *pgproto3.CommandComplete:
			if fields != nil {
				c.pending = append(c.pending, &scriptedResult{
					status: TuplesOK,
					fields: fields,
					tag:    string(m.CommandTag),
				})
				fields = nil
			} else {
				c.pending = append(c.pending, &scriptedResult{
					status: CommandOK,
					tag:    string(m.CommandTag),
				})
			}
		case *pgproto3.ErrorResponse:
			c.pending = append(c.pending, &scriptedResult{
				status: FatalError,
				errMsg: m.Message,
			})
		case *pgproto3.ReadyForQuery:
			// End of the query cycle; the end of the script already
			// carries that information.
		}
	}
}

func (c *ScriptedConn) NextRawResult() RawResult {
	if len(c.pending) == 0 {
		return nil
	}
	r := c.pending[0]
	c.pending = c.pending[1:]
	if r.status == FatalError || r.status == BadResponse {
		c.lastErr = r.errMsg
	}
	return r
}

// Cancel drops the rows the server had not delivered yet, leaving the
// terminal results in place to be discarded by the caller.
func (c *ScriptedConn) Cancel() error {
	c.canceled = true
	for len(c.pending) > 0 && c.pending[0].status == SingleTuple {
		c.pending = c.pending[1:]
	}
	return nil
}

// Canceled reports whether Cancel has been called.
func (c *ScriptedConn) Canceled() bool {
	return c.canceled
}

func (c *ScriptedConn) LastError() string {
	return c.lastErr
}

type scriptedResult struct {
	status Status
	fields []pgproto3.FieldDescription
	values [][]byte
	tag    string
	errMsg string
}

func (r *scriptedResult) Status() Status {
	return r.status
}

func (r *scriptedResult) NumRows() int {
	if r.status == SingleTuple {
		return 1
	}
	return 0
}

func (r *scriptedResult) NumColumns() int {
	return len(r.fields)
}

func (r *scriptedResult) ColumnName(col int) string {
	return string(r.fields[col].Name)
}

func (r *scriptedResult) ColumnOid(col int) oid.Oid {
	return oid.Oid(r.fields[col].DataTypeOID)
}

func (r *scriptedResult) IsNull(col int) bool {
	return r.values[col] == nil
}

func (r *scriptedResult) Value(col int) []byte {
	return r.values[col]
}

func (r *scriptedResult) AffectedRows() string {
	return CommandTuples(r.tag)
}

package libpqmxx

import "iter"

// The iteration surface over a result stream, in the usual database
// Next/Err shape:
//
//	res := libpqmxx.New(conn)
//	for res.Next() {
//	    row := res.Row()
//	    ...
//	}
//	if err := res.Err(); err != nil { ... }
//	res.Drain()

// Next advances the stream to the next row, pulling the first result when
// the stream is still empty. It returns false once the stream has left the
// streaming state: rows exhausted, command acknowledged, or an execution
// failure recorded for Err.
func (r *Result) Next() bool {
	switch r.state {
	case Exhausted, CommandComplete, Fatal:
		return false
	}
	var err error
	if r.raw == nil {
		err = r.First()
	} else {
		err = r.advance()
	}
	if err != nil {
		return false
	}
	return r.state == Streaming
}

// Row returns the view over the current row. The same Row is reused for
// every row of the stream; see Row for the lifetime rules.
func (r *Result) Row() *Row {
	return &r.row
}

// Err returns the execution failure that ended the stream, if any. The
// concrete failure is an *ExecutionError.
func (r *Result) Err() error {
	return r.err
}

// Rows ranges over the remaining rows of the stream. Breaking out of the
// loop leaves the stream mid-query; call Drain before reusing the
// connection.
func (r *Result) Rows() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for r.Next() {
			if !yield(&r.row) {
				return
			}
		}
	}
}

// Package libpqmxx exposes a server's streamed query results as strongly
// typed values through a forward-only stream: one row resident at a time,
// pulled from the connection in single-row mode and decoded on demand.
package libpqmxx

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/pferdinand/libpqmxx/driver"
	"github.com/pferdinand/libpqmxx/wire"
)

// State identifies where a result stream is in its lifecycle.
type State int

const (
	// Empty: no query result attached yet, or the stream has been drained.
	Empty State = iota
	// Streaming: a single row is available through Row.
	Streaming
	// Exhausted: the zero-row terminal after the last row, or a query that
	// returned no rows.
	Exhausted
	// CommandComplete: a command acknowledgment with no rows, e.g. DML.
	CommandComplete
	// Fatal: the server reported an execution failure; Drain cleans up.
	Fatal
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Streaming:
		return "streaming"
	case Exhausted:
		return "exhausted"
	case CommandComplete:
		return "command-complete"
	case Fatal:
		return "fatal"
	}
	return "unknown"
}

type Option func(*Result)

// WithTypeChecks selects the column type verification profile. Checks are
// on by default; performance-sensitive callers that guarantee their
// accessors match the schema can turn them off.
func WithTypeChecks(enabled bool) Option {
	return func(r *Result) {
		r.typeChecks = enabled
	}
}

// Result is the streaming state machine over one query's results. It owns
// the single in-flight raw result exclusively; the connection is borrowed
// for the stream's lifetime. Not safe for concurrent use.
type Result struct {
	conn       driver.Conn
	raw        driver.RawResult
	state      State
	row        Row
	num        uint64
	err        error
	typeChecks bool
}

func New(conn driver.Conn, opts ...Option) *Result {
	r := &Result{
		conn:       conn,
		typeChecks: true,
	}
	r.row.result = r
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the stream's current state.
func (r *Result) State() State {
	return r.state
}

// First pulls the first result of a freshly issued query and resets the row
// counter. Calling it with a result still attached is a caller bug.
func (r *Result) First() error {
	if r.raw != nil {
		panic("pg: First called with a result already attached")
	}
	r.num = 0
	r.err = nil
	return r.advance()
}

// advance pulls the next raw result and classifies it. The previous raw
// result, if any, must have been a streamed row.
func (r *Result) advance() error {
	if r.raw != nil && r.state != Streaming {
		panic("pg: advance past a terminal result")
	}
	raw := r.conn.NextRawResult()
	if raw == nil {
		protocolViolation("no result pending on the connection")
	}
	r.raw = raw

	switch raw.Status() {
	case driver.SingleTuple:
		// Single-row mode: the server hands over exactly one row per result.
		if raw.NumRows() != 1 {
			protocolViolation("single-tuple result carries %d rows", raw.NumRows())
		}
		r.num++
		r.state = Streaming

	case driver.TuplesOK:
		// The zero-row object after the last row, or a query that returned
		// no rows: the signal that no more rows are expected.
		if raw.NumRows() != 0 {
			protocolViolation("tuples-ok result carries %d rows", raw.NumRows())
		}
		r.state = Exhausted

	case driver.CommandOK:
		r.state = CommandComplete

	case driver.BadResponse, driver.FatalError:
		r.state = Fatal
		r.err = errors.WithStack(&ExecutionError{Message: r.conn.LastError()})
		return r.err

	default:
		protocolViolation("unexpected result status %v", raw.Status())
	}
	return nil
}

// Count returns the number of rows affected by the SQL command, parsed from
// the driver's affected-row text. Absent or malformed text counts as zero,
// matching strtoull.
func (r *Result) Count() uint64 {
	if r.raw == nil {
		panic("pg: Count called without a result attached")
	}
	return parseCount(r.raw.AffectedRows())
}

// parseCount reads the leading decimal digits, ignoring anything after
// them.
func parseCount(s string) uint64 {
	var n uint64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + uint64(s[i]-'0')
	}
	return n
}

// Drain disposes of whatever remains of the current query so the connection
// can be reused. A stream abandoned while rows are still coming must cancel
// the query server-side, otherwise the connection is left with buffered
// rows in flight; stopping mid-stream without draining is a correctness
// bug, not just a leak.
func (r *Result) Drain() error {
	switch r.state {
	case CommandComplete:
		return r.drainCommands()

	case Fatal, Exhausted:
		r.discardLast()
		return nil

	case Streaming:
		if err := r.advance(); err != nil {
			// Fatal now; a subsequent Drain cleans up.
			return err
		}
		switch r.state {
		case Streaming:
			// At least one more unread row: abort the query server-side,
			// then discard whatever the server had already sent.
			if err := r.conn.Cancel(); err != nil {
				return errors.Wrap(err, "pg: cancel")
			}
			for r.conn.NextRawResult() != nil {
			}
			r.reset()
		case Exhausted:
			// The abandoned row was the last one; the terminal result is
			// already in hand and no cancel is needed.
			r.discardLast()
		case CommandComplete:
			// Multi-statement query: the trailing statements are commands.
			return r.drainCommands()
		}
		return nil
	}

	// Empty: nothing attached.
	return nil
}

// drainCommands discards trailing raw results until the driver signals
// none remain. Row-returning tails of a multi-statement query are thrown
// away too: their rows were never asked for.
func (r *Result) drainCommands() error {
	for {
		raw := r.conn.NextRawResult()
		if raw == nil {
			r.reset()
			return nil
		}
		switch raw.Status() {
		case driver.BadResponse, driver.FatalError:
			r.raw = raw
			r.state = Fatal
			r.err = errors.WithStack(&ExecutionError{Message: r.conn.LastError()})
			return r.err
		default:
			// CommandOK, SingleTuple, TuplesOK: discard and keep going.
		}
	}
}

// discardLast consumes the nil the driver owes after a terminal result.
func (r *Result) discardLast() {
	if raw := r.conn.NextRawResult(); raw != nil {
		protocolViolation("connection still pending a %v result after the stream ended", raw.Status())
	}
	r.reset()
}

// reset detaches the stream from the drained query. The sticky error, if
// any, survives until the next First so callers can still observe it.
func (r *Result) reset() {
	r.raw = nil
	r.state = Empty
}

func protocolViolation(format string, args ...any) {
	panic(wire.ProtocolError("pg: " + fmt.Sprintf(format, args...)))
}

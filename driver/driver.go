// Package driver defines the connection-facing contract the result stream
// pulls from: one raw result per call, classified by protocol status. It
// also ships an in-memory implementation scripted from backend protocol
// messages, useful for tests and offline consumers.
package driver

import (
	"strings"

	"github.com/lib/pq/oid"
)

// Status classifies a raw result, mirroring the libpq ExecStatusType values
// the stream cares about.
type Status int

const (
	Empty Status = iota
	SingleTuple
	TuplesOK
	CommandOK
	BadResponse
	FatalError
)

func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case SingleTuple:
		return "single-tuple"
	case TuplesOK:
		return "tuples-ok"
	case CommandOK:
		return "command-ok"
	case BadResponse:
		return "bad-response"
	case FatalError:
		return "fatal-error"
	}
	return "unknown"
}

// RawResult is one message-level unit returned by the connection: a single
// row, a zero-row completion signal, a command acknowledgment or an error.
// The column accessors are only meaningful for SingleTuple results.
type RawResult interface {
	Status() Status
	NumRows() int
	NumColumns() int
	ColumnName(col int) string
	ColumnOid(col int) oid.Oid
	IsNull(col int) bool

	// Value returns the column's raw binary bytes, nil when the column is
	// null. The slice is only valid until the next result is pulled.
	Value(col int) []byte

	// AffectedRows returns the affected-row count reported with a command
	// acknowledgment, as text (libpq PQcmdTuples).
	AffectedRows() string
}

// Conn is the borrowed connection a result stream pulls from. Pulling may
// block on a network read; neither the stream nor the decoders block
// anywhere else.
type Conn interface {
	// NextRawResult returns the next pending raw result, or nil when the
	// current query has been fully delivered.
	NextRawResult() RawResult

	// Cancel requests a server-side abort of the in-flight query.
	Cancel() error

	// LastError returns the text of the most recent error reported on the
	// connection.
	LastError() string
}

// CommandTuples extracts the affected-row count from a command tag, with
// PQcmdTuples semantics: the trailing word of tags like "UPDATE 5", empty
// for tags that carry no count.
func CommandTuples(tag string) string {
	i := strings.LastIndexByte(tag, ' ')
	if i == -1 {
		return ""
	}
	count := tag[i+1:]
	for _, r := range count {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return count
}

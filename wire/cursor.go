// Package wire decodes the binary (network) representation of PostgreSQL
// column values: big-endian fixed-width scalars, epoch-2000 based temporal
// types and one-dimensional arrays.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ProtocolError reports a breach of the binary protocol contract by the
// server or the connection layer. It is raised as a panic because the
// decoder cannot continue on a malformed buffer.
type ProtocolError string

func (e ProtocolError) Error() string { return string(e) }

func violationf(format string, args ...any) {
	panic(ProtocolError(fmt.Sprintf(format, args...)))
}

// Cursor walks a single column buffer. Every read consumes exactly the wire
// width of the decoded type and advances past it. Reading beyond the buffer
// is a protocol violation.
type Cursor struct {
	buf []byte
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) next(n int) []byte {
	if len(c.buf) < n {
		violationf("pg: column buffer underrun: need %d bytes, have %d", n, len(c.buf))
	}
	v := c.buf[:n]
	c.buf = c.buf[n:]
	return v
}

// Remaining reports how many bytes of the buffer are left to decode.
func (c *Cursor) Remaining() int {
	return len(c.buf)
}

func (c *Cursor) Bool() bool {
	return c.next(1)[0] != 0
}

func (c *Cursor) Int16() int16 {
	return int16(binary.BigEndian.Uint16(c.next(2)))
}

func (c *Cursor) Int32() int32 {
	return int32(binary.BigEndian.Uint32(c.next(4)))
}

func (c *Cursor) Int64() int64 {
	return int64(binary.BigEndian.Uint64(c.next(8)))
}

// Float32 reinterprets the bit pattern of an int32 read. The wire format
// carries IEEE-754 bits, not a numeric conversion.
func (c *Cursor) Float32() float32 {
	return math.Float32frombits(uint32(c.Int32()))
}

func (c *Cursor) Float64() float64 {
	return math.Float64frombits(uint64(c.Int64()))
}

// Bytes consumes and returns the next n raw bytes. The returned slice
// aliases the underlying buffer.
func (c *Cursor) Bytes(n int) []byte {
	return c.next(n)
}

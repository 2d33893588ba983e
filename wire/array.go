package wire

import (
	"github.com/lib/pq/oid"
)

// The array payload starts with:
//
//	int32 ndim        number of dimensions
//	int32 ofs         data offset, stripped by the driver, ignored here
//	int32 elemtype    oid of the element type
//
// then, for the single supported dimension:
//
//	int32 count       number of elements
//	int32 lbound      index of the first element
//
// followed by count elements, each a 4-byte length (-1 for null) and that
// many bytes of element data.
func readArrayHeader(c *Cursor, elem oid.Oid, strict bool) int32 {
	ndim := c.Int32()
	c.Int32() // data offset
	CheckOid(elem, oid.Oid(c.Int32()), strict)
	if ndim != 1 {
		violationf("pg: unsupported array dimensionality %d, only one-dimensional arrays are supported", ndim)
	}
	count := c.Int32()
	if count < 0 {
		violationf("pg: negative array element count %d", count)
	}
	c.Int32() // lower bound, read but unused
	return count
}

// ReadArray decodes a one-dimensional array payload into a slice, in server
// order. Null elements are replaced by def. elem is verified against the
// payload's element type tag; pass AnyOid to accept any element type.
func ReadArray[T any](buf []byte, elem oid.Oid, def T, strict bool, read func(c *Cursor, size int) T) []T {
	c := NewCursor(buf)
	count := readArrayHeader(c, elem, strict)

	out := make([]T, 0, count)
	for i := int32(0); i < count; i++ {
		size := c.Int32()
		if size == -1 {
			out = append(out, def)
			continue
		}
		out = append(out, read(c, int(size)))
	}
	return out
}

func fixedElem[T any](width int, read func(*Cursor) T) func(*Cursor, int) T {
	return func(c *Cursor, size int) T {
		if size != width {
			violationf("pg: invalid array element size %d, want %d", size, width)
		}
		return read(c)
	}
}

// Element decoders for ReadArray.
var (
	ElemBool    = fixedElem(1, (*Cursor).Bool)
	ElemInt16   = fixedElem(2, (*Cursor).Int16)
	ElemInt32   = fixedElem(4, (*Cursor).Int32)
	ElemInt64   = fixedElem(8, (*Cursor).Int64)
	ElemFloat32 = fixedElem(4, (*Cursor).Float32)
	ElemFloat64 = fixedElem(8, (*Cursor).Float64)
)

// ElemString copies the element's raw bytes as UTF-8 text.
func ElemString(c *Cursor, size int) string {
	return string(c.Bytes(size))
}

// Package srctext models document text for fmtlint.
//
// A document is handed to a check in exactly one of two representations:
// a mutable line-indexed Rope (used while fixes are being applied) or an
// immutable byte buffer (used for one-shot checks). Text wraps the two as
// a tagged pair so callers dispatch on the active representation instead
// of sharing an interface.
package srctext

// Point is a 0-based row and column position in a document.
// Column counts bytes, not runes.
type Point struct {
	Row    int
	Column int
}

// Before returns true if p is strictly before other in document order.
func (p Point) Before(other Point) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}

// Range is a byte range in a document together with its row/column span.
// StartOffset is inclusive, EndOffset exclusive.
type Range struct {
	StartOffset int
	EndOffset   int
	StartPoint  Point
	EndPoint    Point
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Covers returns true if this range fully encloses the byte interval
// [start, end]. A zero-width interval at the range boundary counts as
// covered, which matters for insertion points.
func (r Range) Covers(start, end int) bool {
	return r.StartOffset <= start && end <= r.EndOffset
}

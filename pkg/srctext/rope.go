package srctext

import (
	"io"
	"sort"
)

// Rope is a mutable text buffer with a line-start index, supporting
// line-number-to-byte-offset queries and in-place range replacement.
// Line numbers are 0-based. A document that ends with a newline has one
// final empty line after it, so "a\n" counts two lines.
type Rope struct {
	buf    []byte
	starts []int
}

// NewRope builds a rope over a copy of content.
func NewRope(content []byte) *Rope {
	r := &Rope{buf: append([]byte(nil), content...)}
	r.reindex()
	return r
}

// reindex rebuilds the line-start table from the buffer.
func (r *Rope) reindex() {
	starts := r.starts[:0]
	starts = append(starts, 0)
	for idx, char := range r.buf {
		if char == '\n' {
			starts = append(starts, idx+1)
		}
	}
	r.starts = starts
}

// Len returns the buffer length in bytes.
func (r *Rope) Len() int {
	return len(r.buf)
}

// Bytes returns the underlying buffer. Callers must not modify it.
func (r *Rope) Bytes() []byte {
	return r.buf
}

// LineCount returns the number of lines.
func (r *Rope) LineCount() int {
	return len(r.starts)
}

// LineToByte returns the byte offset of the start of the given 0-based
// line. A line number equal to LineCount (one past the last line) maps to
// the end of the buffer; out-of-range values clamp.
func (r *Rope) LineToByte(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(r.starts) {
		return len(r.buf)
	}
	return r.starts[line]
}

// ByteToLine returns the 0-based line containing the given byte offset.
// An offset at the end of the buffer maps to the last line; out-of-range
// values clamp.
func (r *Rope) ByteToLine(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(r.buf) {
		return len(r.starts) - 1
	}

	// First line start strictly past the offset, minus one.
	idx := sort.Search(len(r.starts), func(i int) bool {
		return r.starts[i] > offset
	})
	return idx - 1
}

// Replace splices text over the byte range [start, end) and rebuilds the
// line index. The range must lie within the buffer.
func (r *Rope) Replace(start, end int, text []byte) {
	buf := make([]byte, 0, len(r.buf)-(end-start)+len(text))
	buf = append(buf, r.buf[:start]...)
	buf = append(buf, text...)
	buf = append(buf, r.buf[end:]...)
	r.buf = buf
	r.reindex()
}

// WriteTo streams the full buffer to w.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.buf)
	return int64(n), err
}

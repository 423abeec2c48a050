package srctext

import (
	"bytes"
	"io"
)

// Text is the document handed to a check: exactly one of a mutable Rope
// or an immutable byte buffer. The zero value behaves as an empty byte
// buffer. Checks read or stream the text; they never retain it.
type Text struct {
	rope *Rope
	buf  []byte
}

// FromRope wraps a rope.
func FromRope(r *Rope) Text {
	return Text{rope: r}
}

// FromBytes wraps an immutable byte buffer. The buffer is not copied.
func FromBytes(content []byte) Text {
	return Text{buf: content}
}

// IsRope returns true if the rope representation is active.
func (t Text) IsRope() bool {
	return t.rope != nil
}

// Rope returns the active rope, or nil for byte-buffer text.
func (t Text) Rope() *Rope {
	return t.rope
}

// Bytes returns the full document content.
func (t Text) Bytes() []byte {
	if t.rope != nil {
		return t.rope.Bytes()
	}
	return t.buf
}

// Len returns the document length in bytes.
func (t Text) Len() int {
	return len(t.Bytes())
}

// Slice returns the content of the byte range [start, end).
func (t Text) Slice(start, end int) []byte {
	return t.Bytes()[start:end]
}

// Reader returns a reader over the full document content, used to stream
// the text to a subprocess.
func (t Text) Reader() io.Reader {
	return bytes.NewReader(t.Bytes())
}

// RowAt returns the 0-based row containing the given byte offset. The
// rope answers from its line index; byte-buffer text counts newlines.
func (t Text) RowAt(offset int) int {
	if t.rope != nil {
		return t.rope.ByteToLine(offset)
	}
	content := t.buf
	if offset < 0 {
		return 0
	}
	if offset > len(content) {
		offset = len(content)
	}
	return bytes.Count(content[:offset], []byte{'\n'})
}

// Line returns the content of a 1-based line number, excluding the
// newline. Returns nil if the line number is out of range.
func (t Text) Line(lineNum int) []byte {
	if lineNum < 1 {
		return nil
	}
	if t.rope != nil {
		if lineNum > t.rope.LineCount() {
			return nil
		}
		start := t.rope.LineToByte(lineNum - 1)
		end := t.rope.LineToByte(lineNum)
		return trimNewline(t.rope.Bytes()[start:end])
	}
	content := t.buf
	start := 0
	for line := 1; ; line++ {
		idx := bytes.IndexByte(content[start:], '\n')
		if line == lineNum {
			if idx < 0 {
				return content[start:]
			}
			return trimNewline(content[start : start+idx+1])
		}
		if idx < 0 {
			return nil
		}
		start += idx + 1
	}
}

// trimNewline strips one trailing LF or CRLF.
func trimNewline(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}

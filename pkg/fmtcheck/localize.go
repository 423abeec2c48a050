package fmtcheck

import (
	"fmt"
	"strings"

	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// Localizer converts the 1-based line spans of mismatch reports into
// byte ranges over the checked document. A rope-backed document
// answers from the rope's line index; a plain byte buffer gets a
// newline-offset table, built once and shared by every mismatch of the
// report.
type Localizer struct {
	text    srctext.Text
	offsets []int
	indexed bool
}

// NewLocalizer builds a localizer over text.
func NewLocalizer(text srctext.Text) *Localizer {
	return &Localizer{text: text}
}

// Localize returns the byte range the mismatch's original lines occupy
// in the document. An empty original text localizes to the zero-width
// range at the start of the begin line, marking a pure insertion
// point. Line numbers past the end of the document clamp to its end.
func (l *Localizer) Localize(m Mismatch) (srctext.Range, error) {
	if err := checkLineTerminated(m); err != nil {
		return srctext.Range{}, err
	}

	var start, end int
	if rope := l.text.Rope(); rope != nil {
		start = rope.LineToByte(m.OriginalBeginLine - 1)
		end = start
		if m.Original != "" {
			end = rope.LineToByte(m.OriginalEndLine)
		}
	} else {
		start, end = l.bufferRange(m)
	}

	return srctext.Range{
		StartOffset: start,
		EndOffset:   end,
		StartPoint:  srctext.Point{Row: l.text.RowAt(start)},
		EndPoint:    srctext.Point{Row: l.text.RowAt(end)},
	}, nil
}

// bufferRange computes the byte range from the newline-offset table.
// Line n starts one byte past the newline ending line n-1 and ends one
// byte past its own newline.
func (l *Localizer) bufferRange(m Mismatch) (start, end int) {
	if !l.indexed {
		l.offsets = srctext.NewlineOffsets(l.text.Bytes())
		l.indexed = true
	}

	length := l.text.Len()

	if m.OriginalBeginLine >= 2 {
		if idx := m.OriginalBeginLine - 2; idx < len(l.offsets) {
			start = l.offsets[idx] + 1
		} else {
			start = length
		}
	}

	if m.Original == "" {
		return start, start
	}

	end = length
	if idx := m.OriginalEndLine - 1; idx >= 0 && idx < len(l.offsets) {
		end = l.offsets[idx] + 1
	}
	return start, end
}

// checkLineTerminated enforces the report invariant that mismatch
// texts span whole lines: when non-empty they must end in a newline.
// Localizing a violator would splice partial lines into the document.
func checkLineTerminated(m Mismatch) error {
	if m.Original != "" && !strings.HasSuffix(m.Original, "\n") {
		return &ProtocolError{
			Reason: fmt.Sprintf("mismatch original for lines %d-%d is not newline-terminated",
				m.OriginalBeginLine, m.OriginalEndLine),
		}
	}
	if m.Expected != "" && !strings.HasSuffix(m.Expected, "\n") {
		return &ProtocolError{
			Reason: fmt.Sprintf("mismatch replacement for lines %d-%d is not newline-terminated",
				m.ExpectedBeginLine, m.ExpectedEndLine),
		}
	}
	return nil
}

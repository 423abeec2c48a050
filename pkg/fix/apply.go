package fix

import (
	"bytes"

	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// ApplyEdits applies a sorted, validated slice of edits to content.
// Edits must be prepared with PrepareEdits or PrepareEditsFiltered first.
// Returns the modified content.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	// Estimate result size.
	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// ApplyToRope applies a sorted, validated slice of edits to a rope in
// place. Edits are spliced back to front so earlier offsets stay valid
// while later ranges are rewritten.
func ApplyToRope(rope *srctext.Rope, edits []TextEdit) {
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		rope.Replace(e.StartOffset, e.EndOffset, []byte(e.NewText))
	}
}

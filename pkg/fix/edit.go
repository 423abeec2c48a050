// Package fix provides text edit types and application logic for auto-fixing.
package fix

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Replace returns an edit that replaces bytes [start, end) with newText.
func Replace(start, end int, newText string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: newText}
}

// Insert returns an edit that inserts text at the given offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}

// Delete returns an edit that deletes bytes [start, end).
func Delete(start, end int) TextEdit {
	return Replace(start, end, "")
}

// Len returns the length of the replaced byte range.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsInsertion returns true for a zero-width edit.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

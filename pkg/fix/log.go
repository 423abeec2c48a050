package fix

// Applied records one applied edit in both coordinate spaces: the byte
// range it replaced in the pre-pass text and the byte range its
// replacement occupies in the post-pass text.
type Applied struct {
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int
}

// Log is the edit delta record for one fixing pass: every region
// rewritten by the pass, ordered by offset, plus a translation from
// pre-pass byte offsets into the post-pass text. Scoped re-checks use
// the new ranges to find freshly rewritten lines and the translation to
// find where earlier findings have shifted to.
type Log struct {
	entries []Applied
}

// NewLog builds a log from edits that have been prepared (sorted,
// non-overlapping) and applied. New-coordinate ranges follow from the
// cumulative length delta of the preceding edits.
func NewLog(edits []TextEdit) *Log {
	log := &Log{entries: make([]Applied, 0, len(edits))}

	delta := 0
	for _, e := range edits {
		newStart := e.StartOffset + delta
		log.entries = append(log.entries, Applied{
			OldStart: e.StartOffset,
			OldEnd:   e.EndOffset,
			NewStart: newStart,
			NewEnd:   newStart + len(e.NewText),
		})
		delta += len(e.NewText) - e.Len()
	}

	return log
}

// Entries returns the applied edits in offset order. A nil log has no
// entries.
func (l *Log) Entries() []Applied {
	if l == nil {
		return nil
	}
	return l.entries
}

// Len returns the number of recorded edits.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// TranslateOffset maps a pre-pass byte offset to its post-pass position.
// Offsets inside a rewritten region clamp into that region's new span,
// so a translated range never escapes the text that replaced it. A nil
// log translates offsets unchanged.
func (l *Log) TranslateOffset(offset int) int {
	if l == nil {
		return offset
	}
	delta := 0
	for _, entry := range l.entries {
		if offset < entry.OldStart {
			break
		}
		if offset >= entry.OldEnd {
			// Past this edit (an offset at a pure-insertion point
			// lands after the inserted text).
			delta += (entry.NewEnd - entry.NewStart) - (entry.OldEnd - entry.OldStart)
			continue
		}
		inner := offset - entry.OldStart
		if newLen := entry.NewEnd - entry.NewStart; inner > newLen {
			inner = newLen
		}
		return entry.NewStart + inner
	}
	return offset + delta
}

// TranslateRange maps a pre-pass byte range to its post-pass position.
func (l *Log) TranslateRange(start, end int) (int, int) {
	return l.TranslateOffset(start), l.TranslateOffset(end)
}

package fmtcheck

import (
	"github.com/yaklabco/fmtlint/pkg/fix"
	"github.com/yaklabco/fmtlint/pkg/lint"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// CheckScope is the outcome of classifying a run stage: skip the check
// entirely, or run it over Ranges. A nil Ranges checks the whole
// document; a non-nil Ranges, even an empty one, checks only the lines
// it lists.
type CheckScope struct {
	Skip   bool
	Ranges []LineRange
}

// ClassifyStage decides how much checking a run stage needs.
//
// Later fixing passes always carry history from the pass before, so
// they check only the lines that pass touched. The first fixing pass
// scopes the same way when the caller supplied both an edit log and
// prior findings; with either missing there is nothing to scope by and
// the whole document is checked. Verification passes skip outright:
// the fix loop has already verified what it wrote, and formatters are
// not obliged to be idempotent, so re-checking can only manufacture
// churn. Every other stage checks the whole document.
func ClassifyStage(text srctext.Text, stage lint.Stage) CheckScope {
	switch s := stage.(type) {
	case lint.DryPass:
		return CheckScope{Skip: true}
	case lint.InitialFixPass:
		if s.Log != nil && s.PriorViolations != nil {
			return CheckScope{Ranges: SelectLineRanges(text, s.Log, s.PriorViolations)}
		}
		return CheckScope{}
	case lint.FixLoopPass:
		return CheckScope{Ranges: SelectLineRanges(text, s.Log, s.Violations)}
	default:
		return CheckScope{}
	}
}

// SelectLineRanges computes the lines a scoped check must cover: the
// lines freshly written by the logged edits, plus the lines of the
// prior findings translated through those edits. Ranges are collected
// in order without merging; overlapping ranges are harmless and a
// range is never dropped.
func SelectLineRanges(text srctext.Text, log *fix.Log, prior []lint.Violation) []LineRange {
	entries := log.Entries()
	ranges := make([]LineRange, 0, len(entries)+len(prior))

	for _, entry := range entries {
		ranges = append(ranges, lineRangeAt(text, entry.NewStart, entry.NewEnd))
	}
	for _, v := range prior {
		start, end := log.TranslateRange(v.Span.StartOffset, v.Span.EndOffset)
		ranges = append(ranges, lineRangeAt(text, start, end))
	}

	return ranges
}

// lineRangeAt converts a byte range over text into the half-open line
// range covering it. A zero-width byte range still covers the one line
// it sits on.
func lineRangeAt(text srctext.Text, start, end int) LineRange {
	return LineRange{
		Start: text.RowAt(start),
		End:   text.RowAt(end) + 1,
	}
}

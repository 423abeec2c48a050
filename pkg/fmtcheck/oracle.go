// Package fmtcheck implements the formatter-backed check. It streams a
// document to an external formatter running in check mode, decodes the
// mismatch report the formatter prints, and turns each mismatch into a
// violation carrying a byte-exact replacement fix.
//
// The check is oracle-driven: fmtlint never reimplements a formatter's
// style rules. It asks the formatter which regions it would rewrite and
// what it would write there, so the check agrees with the tool by
// construction. Any command that reads source from stdin and reports
// mismatches as JSON can back a profile.
package fmtcheck

import (
	"context"

	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// LineRange is a half-open range of 0-based lines, [Start, End).
type LineRange struct {
	Start int
	End   int
}

// Mismatch is one region the formatter would rewrite: the lines it
// covers, the text they hold, and the text they should hold. Line
// numbers are 1-based and inclusive, as formatters report them. The
// texts span whole lines, so when non-empty they end in a newline; an
// empty Original marks a pure insertion at BeginLine.
type Mismatch struct {
	OriginalBeginLine int    `json:"original_begin_line"`
	OriginalEndLine   int    `json:"original_end_line"`
	ExpectedBeginLine int    `json:"expected_begin_line"`
	ExpectedEndLine   int    `json:"expected_end_line"`
	Original          string `json:"original"`
	Expected          string `json:"expected"`
}

// Oracle reports which regions of a document a formatter would rewrite.
//
// A nil scope requests a check of the whole document. A non-nil scope
// narrows the report to the given lines; the full document is still
// provided either way, because formatters need the surrounding context
// to judge the scoped lines.
type Oracle interface {
	Check(ctx context.Context, text srctext.Text, scope []LineRange) ([]Mismatch, error)
}

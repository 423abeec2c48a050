package lint

import (
	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/fix"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// Violation represents a single formatting issue found in a file.
type Violation struct {
	// Profile is the name of the formatter profile that produced this
	// violation (e.g., "rust").
	Profile string

	// Check is the stable identifier of the check that fired
	// (e.g., "unexpected-formatting").
	Check string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the violation.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Span is the byte range of the offending region in the checked
	// content. Scoped re-checks translate it through later edits.
	Span srctext.Range

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// Node is the smallest syntax node enclosing the span, when the
	// producing check anchored the violation to the parse tree.
	Node *doctree.Node

	// FixEdits contains the text edits to fix this issue (may be empty).
	FixEdits []fix.TextEdit
}

// HasFix returns true if this violation has associated fix edits.
func (v *Violation) HasFix() bool {
	return len(v.FixEdits) > 0
}

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation anchored to the given node.
// The span is taken from the node; use WithNode to anchor a violation
// whose span differs from the node's own range.
func NewViolation(profile, filePath string, node *doctree.Node, message string) *ViolationBuilder {
	var span srctext.Range
	if node != nil {
		span = node.Range()
	}
	return NewViolationAt(profile, filePath, span, message).WithNode(node)
}

// NewViolationAt starts building a violation at a specific span.
func NewViolationAt(profile, filePath string, span srctext.Range, message string) *ViolationBuilder {
	return &ViolationBuilder{
		v: Violation{
			Profile:     profile,
			Message:     message,
			FilePath:    filePath,
			Span:        span,
			StartLine:   span.StartPoint.Row + 1,
			StartColumn: span.StartPoint.Column + 1,
			EndLine:     span.EndPoint.Row + 1,
			EndColumn:   span.EndPoint.Column + 1,
		},
	}
}

// WithCheck sets the stable check identifier.
func (b *ViolationBuilder) WithCheck(check string) *ViolationBuilder {
	b.v.Check = check
	return b
}

// WithSeverity sets the severity.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *ViolationBuilder) WithSuggestion(s string) *ViolationBuilder {
	b.v.Suggestion = s
	return b
}

// WithNode records the syntax node the violation is anchored to.
func (b *ViolationBuilder) WithNode(node *doctree.Node) *ViolationBuilder {
	b.v.Node = node
	return b
}

// WithEdit adds a single fix edit.
func (b *ViolationBuilder) WithEdit(edit fix.TextEdit) *ViolationBuilder {
	b.v.FixEdits = append(b.v.FixEdits, edit)
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	return b.v
}

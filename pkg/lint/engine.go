package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/fix"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	// Path is the checked file path.
	Path string

	// Source is the checked content. Reporters read context lines from
	// it; in fix mode it reflects the content the final pass saw.
	Source srctext.Text

	// Tree is the structural tree of the checked content.
	Tree *doctree.Tree

	// Language is the detected language (may be empty).
	Language string

	// Violations contains all issues found.
	Violations []Violation

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// RuleErrors contains any errors from rule execution, keyed by rule name.
	RuleErrors map[string]error
}

// HasIssues returns true if any violations were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Violations) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of violations.
func (fr *FileResult) IssueCount() int {
	return len(fr.Violations)
}

// FixableCount returns the number of violations with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, v := range fr.Violations {
		if v.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing, language detection, and rule execution.
type Engine struct {
	// Parser builds structural trees for checked files.
	Parser Parser

	// Detector maps files to language names. May be nil, in which case
	// rules are routed by extension claims only.
	Detector Detector

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser, detector, and registry.
func NewEngine(parser Parser, detector Detector, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Detector: detector,
		Registry: registry,
	}
}

// CheckFile parses and checks a single file's content at the given stage.
func (e *Engine) CheckFile(
	ctx context.Context,
	path string,
	text srctext.Text,
	cfg *config.Config,
	stage Stage,
) (*FileResult, error) {
	content := text.Bytes()

	// Parse the file.
	tree, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	// Detect the language once per file.
	language := ""
	if e.Detector != nil {
		language = e.Detector.Detect(path, content)
	}

	// Resolve which rules to run.
	resolved := ResolveRules(e.Registry, cfg)

	result := &FileResult{
		Path:       path,
		Source:     text,
		Tree:       tree,
		Language:   language,
		Violations: nil,
		Edits:      nil,
		RuleErrors: make(map[string]error),
	}

	// Collect all edits for validation.
	var allEdits []fix.TextEdit

	// Run each rule that claims the file.
	for _, rr := range resolved {
		if !rr.Claims(path, language) {
			continue
		}

		// Check for cancellation.
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		// Create rule context.
		rc := NewRunContext(ctx, path, text, tree, cfg, rr.Profile)
		rc.Language = language
		rc.Stage = stage
		rc.Registry = e.Registry

		// Execute rule.
		viols, err := rr.Rule.Apply(rc)
		if err != nil {
			result.RuleErrors[rr.Rule.Name()] = err
			continue
		}

		// Process violations.
		for i := range viols {
			// Apply resolved severity.
			viols[i].Severity = rr.Severity

			// Ensure file path and profile name are set.
			if viols[i].FilePath == "" {
				viols[i].FilePath = path
			}
			if viols[i].Profile == "" {
				viols[i].Profile = rr.Rule.Name()
			}

			// Collect edits if auto-fix is enabled for this rule.
			if rr.AutoFix && len(viols[i].FixEdits) > 0 {
				allEdits = append(allEdits, viols[i].FixEdits...)
			}
		}

		result.Violations = append(result.Violations, viols...)
	}

	// Validate and prepare edits, filtering conflicts.
	if len(allEdits) > 0 {
		accepted, skipped, err := fix.PrepareEditsFiltered(allEdits, text.Len())
		if err != nil {
			// Validation error (not conflicts - those are filtered).
			// Still include violations but clear edits.
			result.Edits = nil
			result.SkippedEdits = nil
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}

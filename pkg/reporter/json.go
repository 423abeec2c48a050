package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/fmtlint/pkg/runner"
)

// Severity string constants.
const (
	severityWarning = "warning"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string            `json:"path"`
	Violations  []JSONViolation   `json:"violations"`
	Modified    bool              `json:"modified,omitempty"`
	Skipped     bool              `json:"skipped,omitempty"`
	SkipReason  string            `json:"skipReason,omitempty"`
	Error       string            `json:"error,omitempty"`
	CheckErrors map[string]string `json:"checkErrors,omitempty"`
}

// JSONViolation represents a single violation.
type JSONViolation struct {
	Profile     string    `json:"profile"`
	Check       string    `json:"check,omitempty"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixable     bool      `json:"fixable"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix represents a proposed fix.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	EditsApplied    int            `json:"editsApplied"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	// Pre-allocate if we have files
	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       file.Path,
			Violations: make([]JSONViolation, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil {
			fileResult.Modified = file.Result.Written
			fileResult.Skipped = file.Result.Skipped
			fileResult.SkipReason = file.Result.SkipReason
			output.Summary.EditsApplied += file.Result.TotalEditsApplied

			if file.Result.FileResult != nil {
				for name, checkErr := range file.Result.RuleErrors {
					if fileResult.CheckErrors == nil {
						fileResult.CheckErrors = make(map[string]string)
					}
					fileResult.CheckErrors[name] = checkErr.Error()
				}

				for _, v := range file.Result.Violations {
					jsonViol := JSONViolation{
						Profile:     v.Profile,
						Check:       v.Check,
						Severity:    string(v.Severity),
						Message:     v.Message,
						StartLine:   v.StartLine,
						StartColumn: v.StartColumn,
						EndLine:     v.EndLine,
						EndColumn:   v.EndColumn,
						Suggestion:  v.Suggestion,
						Fixable:     len(v.FixEdits) > 0,
					}

					for _, edit := range v.FixEdits {
						jsonViol.Fixes = append(jsonViol.Fixes, JSONFix{
							StartOffset: edit.StartOffset,
							EndOffset:   edit.EndOffset,
							NewText:     edit.NewText,
						})
					}

					fileResult.Violations = append(fileResult.Violations, jsonViol)
					output.Summary.TotalIssues++

					severity := string(v.Severity)
					if severity == "" {
						severity = severityWarning
					}
					output.Summary.BySeverity[severity]++
				}
			}
		}

		if len(fileResult.Violations) > 0 {
			output.Summary.FilesWithIssues++
		}
		if fileResult.Modified {
			output.Summary.FilesModified++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}

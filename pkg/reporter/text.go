package reporter

import (
	"bufio"
	"context"
	"fmt"
	"sort"

	"github.com/yaklabco/fmtlint/internal/ui/pretty"
	"github.com/yaklabco/fmtlint/pkg/lint"
	"github.com/yaklabco/fmtlint/pkg/runner"
)

// sourceIndent is the leading whitespace FormatSourceContext applies. The
// truncation budget subtracts it so context lines never wrap.
const sourceIndent = 8

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var totalIssues int

	if r.opts.GroupByFile {
		totalIssues = r.reportGrouped(result)
	} else {
		totalIssues = r.reportFlat(result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return totalIssues, nil
}

// reportGrouped writes violations grouped by file.
func (r *TextReporter) reportGrouped(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		if r.reportFileStatus(file) {
			continue
		}

		violations := file.Result.Violations
		if len(violations) == 0 {
			continue
		}

		// File header
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(violations)))

		for i := range violations {
			fmt.Fprint(r.bw, r.styles.FormatViolation(&violations[i], r.opts.ShowContext, r.sourceLine(file, &violations[i])))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes violations without grouping.
func (r *TextReporter) reportFlat(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		if r.reportFileStatus(file) {
			continue
		}

		violations := file.Result.Violations
		for i := range violations {
			fmt.Fprint(r.bw, r.styles.FormatViolation(&violations[i], r.opts.ShowContext, r.sourceLine(file, &violations[i])))
			total++
		}
	}

	return total
}

// reportFileStatus writes error, skip, and failed-check lines for a file.
// It returns true when the file has nothing further to render.
func (r *TextReporter) reportFileStatus(file runner.FileOutcome) bool {
	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return true
	}

	if file.Result == nil || file.Result.FileResult == nil {
		return true
	}

	if file.Result.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Warning.Render("skipped: "+file.Result.SkipReason),
		)
		return true
	}

	// Failed checks are loud. A formatter that broke the output contract
	// must not read as a clean pass.
	for _, name := range sortedErrorKeys(file.Result.RuleErrors) {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Error.Render(fmt.Sprintf("check %s failed: %v", name, file.Result.RuleErrors[name])),
		)
	}

	return false
}

// sourceLine extracts the context line for a violation, truncated to the
// terminal width.
func (r *TextReporter) sourceLine(file runner.FileOutcome, v *lint.Violation) string {
	if !r.opts.ShowContext {
		return ""
	}
	line := file.Result.Source.Line(v.StartLine)
	if line == nil {
		return ""
	}
	return pretty.TruncateLine(string(line), r.width-sourceIndent)
}

// sortedErrorKeys returns map keys in stable order for deterministic output.
func sortedErrorKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

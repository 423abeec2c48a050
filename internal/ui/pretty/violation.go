package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/lint"
)

// FormatViolation formats a single violation for terminal output.
func (s *Styles) FormatViolation(v *lint.Violation, showContext bool, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col
	location := s.FilePath.Render(v.FilePath) +
		s.Location.Render(fmt.Sprintf(":%d:%d", v.StartLine, v.StartColumn))

	// Severity with prefix
	severity := s.FormatSeverity(v.Severity)

	// Identifier: profile/check
	identifier := s.CheckID.Render("(" + ViolationID(v) + ")")

	// Main line: location  severity  message  (profile/check)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(v.Message),
		identifier,
	))

	// Source context
	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.StartColumn))
	}

	// Suggestion
	if v.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(v.Suggestion) + "\n")
	}

	return builder.String()
}

// ViolationID returns the display identifier for a violation: the profile
// name, joined with the check name when one is set.
func ViolationID(v *lint.Violation) string {
	if v.Check == "" {
		return v.Profile
	}
	return v.Profile + "/" + v.Check
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with violation output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker. Skipped when the column points past the visible line,
	// which happens when the line was truncated to the terminal width.
	if column > 0 && column <= len(line)+1 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

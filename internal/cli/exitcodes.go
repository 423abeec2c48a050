package cli

import (
	"errors"

	"github.com/yaklabco/fmtlint/internal/configloader"
	"github.com/yaklabco/fmtlint/pkg/lint"
	"github.com/yaklabco/fmtlint/pkg/runner"
)

// Exit codes for fmtlint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates the check completed but found errors.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates the check found warnings (strict mode only).
	ExitCheckWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	// A formatter that broke the output protocol produced no findings;
	// that absence must not read as a clean pass.
	if result.HasCheckErrors() {
		return ExitInternalError
	}

	errorCount := result.Stats.ViolationsBySeverity["error"]
	warningCount := result.Stats.ViolationsBySeverity["warning"]

	if errorCount > 0 {
		return ExitCheckErrors
	}

	if strict && warningCount > 0 {
		return ExitCheckWarnings
	}

	return ExitSuccess
}

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrIssuesFound):
		return ExitCheckErrors
	case errors.Is(err, ErrWarningsFound):
		return ExitCheckWarnings
	case errors.Is(err, ErrChecksFailed):
		return ExitInternalError
	}

	var verr *configloader.ValidationError
	if errors.As(err, &verr) {
		return ExitConfigError
	}

	if errors.Is(err, lint.ErrFileNotFound) ||
		errors.Is(err, lint.ErrPermissionDenied) ||
		errors.Is(err, lint.ErrWriteFailure) {
		return ExitIOError
	}

	return ExitInternalError
}

package lint

import "github.com/yaklabco/fmtlint/pkg/fix"

// Stage describes which phase of a run a rule application belongs to.
// Rules that shell out to external tools use it to decide whether to run
// at all and whether a scoped check is possible.
//
// The set of stages is closed: FullPass, DryPass, InitialFixPass, and
// FixLoopPass are the only implementations.
type Stage interface {
	isStage()

	// String returns a short stable name for logging.
	String() string
}

// FullPass requests an unscoped check of the entire file. It is the
// stage used for plain check runs where no edit history exists.
type FullPass struct{}

func (FullPass) isStage()       {}
func (FullPass) String() string { return "full" }

// DryPass is a verification pass after fixing has converged. Rules whose
// checks are not idempotent under repeated application skip it; their
// findings from the fixing passes stand.
type DryPass struct{}

func (DryPass) isStage()       {}
func (DryPass) String() string { return "dry" }

// InitialFixPass is the first fixing pass over a file. Log and
// PriorViolations carry history from an earlier run when the caller has
// it; either may be nil, in which case rules fall back to a full check.
type InitialFixPass struct {
	// Log records edits applied since the file was last checked.
	Log *fix.Log

	// PriorViolations are the violations found by the last check.
	PriorViolations []Violation
}

func (InitialFixPass) isStage()       {}
func (InitialFixPass) String() string { return "initial-fix" }

// FixLoopPass is a later pass of the fix loop. The previous pass found
// Violations and applied the edits recorded in Log, so rules can scope
// their check to the regions those describe.
type FixLoopPass struct {
	// Violations are the findings of the previous fixing pass.
	Violations []Violation

	// Log records the edits the previous pass applied.
	Log *fix.Log
}

func (FixLoopPass) isStage()       {}
func (FixLoopPass) String() string { return "fix-loop" }

// Package lint provides the check engine, violations, and profile registry for fmtlint.
package lint

import (
	"github.com/yaklabco/fmtlint/pkg/config"
)

// Rule defines the interface that all checks must implement.
//
// In fmtlint a rule usually wraps one external formatter profile, but
// nothing in the engine assumes that: any implementation that claims
// files and reports violations works.
type Rule interface {
	// Name returns the unique name of the rule. For formatter-backed
	// rules this is the profile name (e.g., "rust").
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Languages returns the detected-language names this rule claims.
	Languages() []string

	// Extensions returns the file extensions this rule claims, with
	// leading dot (e.g., ".rs"). Extensions are matched before
	// language detection runs.
	Extensions() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Apply executes the rule against the given context and returns violations.
	//
	// Rules must:
	//   - Return violations for each issue found.
	//   - Attach fix edits to violations (if CanFix() is true).
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not violations.
	Apply(rc *RunContext) ([]Violation, error)
}

package lint

import "github.com/yaklabco/fmtlint/pkg/config"

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
// Use the New* constructors or struct literal with field names.
type BaseRule struct {
	name       string   // Unique rule name (e.g., "rust")
	desc       string   // Detailed description
	languages  []string // Detected-language names the rule claims
	extensions []string // File extensions the rule claims
	fixable    bool     // Whether the rule can auto-fix
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(name, desc string, languages, extensions []string, fixable bool) BaseRule {
	return BaseRule{
		name:       name,
		desc:       desc,
		languages:  languages,
		extensions: extensions,
		fixable:    fixable,
	}
}

// Name returns the unique name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Languages returns the detected-language names this rule claims.
func (r *BaseRule) Languages() []string {
	return r.languages
}

// Extensions returns the file extensions this rule claims.
func (r *BaseRule) Extensions() []string {
	return r.extensions
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Apply must be overridden by concrete rule implementations.
// The default implementation returns no violations.
func (r *BaseRule) Apply(_ *RunContext) ([]Violation, error) {
	return nil, nil
}

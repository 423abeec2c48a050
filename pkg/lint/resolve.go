package lint

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/fmtlint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for violations from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Profile is the formatter profile configuration (may be nil).
	Profile *config.ProfileConfig
}

// Claims reports whether the rule is responsible for the given file.
// Extensions are checked first; language names only matter when no
// extension claim matches.
func (rr ResolvedRule) Claims(path, language string) bool {
	ext := filepath.Ext(path)
	for _, e := range rr.Rule.Extensions() {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	if language == "" {
		return false
	}
	for _, l := range rr.Rule.Languages() {
		if strings.EqualFold(l, language) {
			return true
		}
	}
	return false
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
		Profile:  nil,
	}

	if cfg == nil {
		return rr
	}

	// Config-wide default severity, unless the profile overrides it below.
	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	// Apply profile-specific config.
	if profile, ok := cfg.Profiles[rule.Name()]; ok {
		rr.Profile = &profile

		if profile.Enabled != nil {
			rr.Enabled = *profile.Enabled
		}
		if profile.Severity != nil {
			rr.Severity = config.Severity(*profile.Severity)
		}
		if profile.AutoFix != nil {
			rr.AutoFix = *profile.AutoFix && rule.CanFix()
		}
	}

	// Explicit enable/disable from the CLI wins over file config.
	for _, name := range cfg.EnableProfiles {
		if name == rule.Name() {
			rr.Enabled = true
			break
		}
	}
	for _, name := range cfg.DisableProfiles {
		if name == rule.Name() {
			rr.Enabled = false
			break
		}
	}

	// Apply fix-profiles filter from CLI.
	if len(cfg.FixProfiles) > 0 {
		rr.AutoFix = false
		for _, name := range cfg.FixProfiles {
			if name == rule.Name() && rule.CanFix() {
				rr.AutoFix = true
				break
			}
		}
	}

	// Disable auto-fix if --fix is not set.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

package fmtcheck

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/fmtlint/internal/logging"
	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/fix"
	"github.com/yaklabco/fmtlint/pkg/lint"
)

// CheckName is the stable identifier formatting violations carry.
const CheckName = "unexpected-formatting"

// violationMessage is the fixed message for formatting violations. The
// interesting detail lives in the fix, not the message.
const violationMessage = "Unexpected formatting"

// Rule adapts a formatter oracle to the lint engine. One Rule backs
// one profile: it claims the profile's languages and extensions, asks
// the oracle which regions the formatter would rewrite, and emits one
// fixable violation per region.
type Rule struct {
	lint.BaseRule
	oracle Oracle
	logger *log.Logger
}

// NewRule creates the rule for a profile, backed by the profile's
// command. The logger receives a warning when the formatter cannot be
// run; nil selects the default logger.
func NewRule(name string, profile config.ProfileConfig, logger *log.Logger) *Rule {
	return NewRuleWithOracle(name, profile, NewExecOracle(profile), logger)
}

// NewRuleWithOracle creates the rule over a caller-supplied oracle.
func NewRuleWithOracle(name string, profile config.ProfileConfig, oracle Oracle, logger *log.Logger) *Rule {
	if logger == nil {
		logger = logging.Default()
	}
	desc := fmt.Sprintf("Formatting matches %s output", profile.Command)
	return &Rule{
		BaseRule: lint.NewBaseRule(name, desc, profile.Languages, profile.Extensions, true),
		oracle:   oracle,
		logger:   logger,
	}
}

// Apply runs the formatter over the file and converts each reported
// mismatch into a violation with a byte-exact replacement fix.
//
// A formatter that cannot be run is survivable: the rule logs a
// warning and reports the file clean, so one missing tool does not
// fail a whole run. Malformed formatter output is not survivable and
// surfaces as a rule error.
func (r *Rule) Apply(rc *lint.RunContext) ([]lint.Violation, error) {
	scope := ClassifyStage(rc.Text, rc.Stage)
	if scope.Skip {
		return nil, nil
	}

	if rc.Cancelled() {
		return nil, fmt.Errorf("rule cancelled: %w", rc.Ctx.Err())
	}

	mismatches, err := r.oracle.Check(rc.Ctx, rc.Text, scope.Ranges)
	if err != nil {
		if ctxErr := rc.Ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("rule cancelled: %w", ctxErr)
		}
		var execErr *ExecError
		if errors.As(err, &execErr) {
			r.logger.Warn("formatter unavailable, skipping check",
				logging.FieldProfile, r.Name(),
				logging.FieldFile, rc.Path,
				logging.FieldError, err)
			return nil, nil
		}
		return nil, fmt.Errorf("formatter check: %w", err)
	}

	localizer := NewLocalizer(rc.Text)
	violations := make([]lint.Violation, 0, len(mismatches))
	for _, m := range mismatches {
		span, err := localizer.Localize(m)
		if err != nil {
			return nil, fmt.Errorf("formatter check: %w", err)
		}

		node := rc.Tree.DescendantForByteRange(span.StartOffset, span.EndOffset)

		violations = append(violations,
			lint.NewViolationAt(r.Name(), rc.Path, span, violationMessage).
				WithCheck(CheckName).
				WithNode(node).
				WithEdit(fix.Replace(span.StartOffset, span.EndOffset, m.Expected)).
				Build())
	}

	return violations, nil
}

// BuildRegistry constructs the rule registry from the configured
// profiles. A profile without a command cannot be run and is skipped
// with a warning.
func BuildRegistry(cfg *config.Config, logger *log.Logger) *lint.Registry {
	if logger == nil {
		logger = logging.Default()
	}

	registry := lint.NewRegistry()
	for name, profile := range cfg.Profiles {
		if profile.Command == "" {
			logger.Warn("profile has no command, skipping",
				logging.FieldProfile, name)
			continue
		}
		registry.Register(NewRule(name, profile, logger))
	}
	return registry
}

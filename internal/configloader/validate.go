package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/fmtlint/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "profiles.rust.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., a profile without a command).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownSeverities lists valid severity values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSeverities = map[string]bool{
	"error":   true,
	"warning": true,
	"info":    true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.SeverityDefault != "" && !knownSeverities[cfg.SeverityDefault] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "severity_default",
			Value:   cfg.SeverityDefault,
			Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, diff", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.MaxPasses < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_passes",
			Value:   cfg.MaxPasses,
			Message: "max_passes must be >= 0 (0 means built-in default)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateProfiles(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateProfiles checks formatter profile configurations.
func validateProfiles(cfg *config.Config, result *ValidationResult) {
	for name, profile := range cfg.Profiles {
		field := "profiles." + name

		// A profile without a command is skipped at registry build time;
		// surface it early as a warning so the user isn't left guessing.
		if profile.Command == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field + ".command",
				Value:   "",
				Message: fmt.Sprintf("profile %q has no command and will be skipped", name),
			})
		}

		if profile.Severity != nil && !knownSeverities[*profile.Severity] {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".severity",
				Value:   *profile.Severity,
				Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *profile.Severity),
			})
		}

		if profile.Timeout < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".timeout",
				Value:   profile.Timeout,
				Message: "timeout must be >= 0",
			})
		}

		for i, ext := range profile.Extensions {
			if !strings.HasPrefix(ext, ".") {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   fmt.Sprintf("%s.extensions[%d]", field, i),
					Value:   ext,
					Message: fmt.Sprintf("extension %q should start with a dot (e.g., %q)", ext, "."+ext),
				})
			}
		}

		if len(profile.Languages) == 0 && len(profile.Extensions) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("profile %q claims no languages or extensions; it will never match a file", name),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns.
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return knownSeverities[s]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}

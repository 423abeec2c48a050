// Package config defines core configuration types for fmtlint.
// These types are pure data structures with no external dependencies on Viper or other config loaders.
package config

import "time"

// Severity represents the severity level of a formatting violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultProfileTimeout bounds a single formatter invocation when the
// profile does not set its own timeout.
const DefaultProfileTimeout = 60 * time.Second

// Duration is a time.Duration that serializes to and from YAML as a
// human-readable string ("30s", "2m").
type Duration time.Duration

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ProfileConfig describes one external formatter profile: the command to
// launch and the files it is responsible for.
type ProfileConfig struct {
	// Command is the formatter executable, resolved via PATH.
	Command string `mapstructure:"command" yaml:"command"`

	// Args are passed before the flags fmtlint appends itself.
	Args []string `mapstructure:"args" yaml:"args,omitempty"`

	// Languages the profile claims, by detected language name.
	Languages []string `mapstructure:"languages" yaml:"languages,omitempty"`

	// Extensions the profile claims, checked before language detection.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Timeout bounds one formatter run. Zero means DefaultProfileTimeout.
	Timeout Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`

	Enabled  *bool   `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Severity *string `mapstructure:"severity" yaml:"severity,omitempty"`
	AutoFix  *bool   `mapstructure:"auto_fix" yaml:"auto_fix,omitempty"`
}

// EffectiveTimeout returns the profile timeout, falling back to the default.
func (p ProfileConfig) EffectiveTimeout() time.Duration {
	if p.Timeout > 0 {
		return time.Duration(p.Timeout)
	}
	return DefaultProfileTimeout
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar", "xdg", etc.
}

// OutputFormat specifies the output format for violations.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// IsValid returns true if the output format is one fmtlint can render.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for fmtlint.
type Config struct {
	// SeverityDefault is the default severity for profiles that don't specify one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default"`

	// Profiles contains formatter configuration keyed by profile name.
	Profiles map[string]ProfileConfig `mapstructure:"profiles" yaml:"profiles"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// MaxPasses caps the fix loop per file. Zero means the built-in default.
	MaxPasses int `mapstructure:"max_passes" yaml:"max_passes,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix enables rewriting files with the formatter's output.
	Fix bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EnableProfiles contains profile names to explicitly enable.
	EnableProfiles []string `mapstructure:"-" yaml:"-"`

	// DisableProfiles contains profile names to explicitly disable.
	DisableProfiles []string `mapstructure:"-" yaml:"-"`

	// FixProfiles limits fixing to specific profile names.
	FixProfiles []string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Profiles: map[string]ProfileConfig{
			"rust": DefaultRustProfile(),
		},
		Ignore: nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// DefaultRustProfile returns the built-in rustfmt profile.
// The range-based checking protocol needs nightly rustfmt with unstable
// features, so those toolchain args are part of the default.
func DefaultRustProfile() ProfileConfig {
	return ProfileConfig{
		Command:    "rustfmt",
		Args:       []string{"+nightly", "--unstable-features"},
		Languages:  []string{"rust"},
		Extensions: []string{".rs"},
	}
}

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all built-in profiles with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate()
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# fmtlint configuration
# See: https://github.com/yaklabco/fmtlint

# Default severity for all profiles: error, warning, or info
# severity_default: warning

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "target/**"

# Formatter profiles. Each profile names an external formatter that
# speaks the rustfmt-style "--emit json" mismatch protocol.
profiles:
  rust:
    command: rustfmt
    args: ["+nightly", "--unstable-features"]
    languages: [rust]
    extensions: [".rs"]
    # timeout: 60s
    # severity: warning
`)

	return buf.Bytes(), nil
}

// generateFullTemplate creates a full template with all settings documented.
func generateFullTemplate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# fmtlint configuration - Full Template
# See: https://github.com/yaklabco/fmtlint
#
# This template includes every setting with its default value.
# Uncomment and modify settings as needed.

# Default severity for all profiles: error, warning, or info
severity_default: warning

# Maximum number of fix passes per file (0 = built-in default)
max_passes: 0

# Backup configuration for --fix
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "target/**"
  - ".git/**"

# Formatter profiles. Each profile names an external formatter that
# speaks the rustfmt-style "--emit json" mismatch protocol, plus the
# languages and extensions it is responsible for. fmtlint appends the
# protocol flags itself; args holds only profile-specific extras.
profiles:
`)

	profiles := builtinProfiles()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := profiles[name]
		buf.WriteString(fmt.Sprintf("\n  %s:\n", name))
		buf.WriteString(fmt.Sprintf("    command: %s\n", p.Command))
		if len(p.Args) > 0 {
			buf.WriteString("    args: [")
			for i, arg := range p.Args {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(fmt.Sprintf("%q", arg))
			}
			buf.WriteString("]\n")
		}
		if len(p.Languages) > 0 {
			buf.WriteString(fmt.Sprintf("    languages: %v\n", p.Languages))
		}
		if len(p.Extensions) > 0 {
			buf.WriteString("    extensions: [")
			for i, ext := range p.Extensions {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(fmt.Sprintf("%q", ext))
			}
			buf.WriteString("]\n")
		}
		buf.WriteString("    # timeout: 60s\n")
		buf.WriteString("    # enabled: true\n")
		buf.WriteString("    # severity: warning\n")
		buf.WriteString("    # auto_fix: true\n")
	}

	buf.WriteString(`
  # Any formatter that implements the same protocol can be added:
  # myfmt:
  #   command: myfmt
  #   args: ["--strict"]
  #   extensions: [".my"]
`)

	return buf.Bytes(), nil
}

// builtinProfiles returns the profiles fmtlint ships with.
func builtinProfiles() map[string]ProfileConfig {
	return map[string]ProfileConfig{
		"rust": DefaultRustProfile(),
	}
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	profiles := make(map[string]any)
	for name, p := range builtinProfiles() {
		profiles[name] = map[string]any{
			"command":    p.Command,
			"args":       p.Args,
			"languages":  p.Languages,
			"extensions": p.Extensions,
		}
	}

	cfg := map[string]any{
		"severity_default": "warning",
		"max_passes":       0,
		"backups": map[string]any{
			"enabled": true,
			"mode":    "sidecar",
		},
		"ignore":   []string{"vendor/**", "target/**", ".git/**"},
		"profiles": profiles,
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# fmtlint configuration
# See: https://github.com/yaklabco/fmtlint`
}

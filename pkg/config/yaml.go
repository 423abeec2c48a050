package config

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the duration as a human-readable string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML parses durations written as strings ("30s", "2m").
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("parse timeout: %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse timeout %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	// Marshal to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	// Prepend header
	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	// Ensure Profiles map is initialized
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]ProfileConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	// Use YAML round-trip for deep copy of serializable fields
	yamlBytes, err := c.ToYAML()
	if err != nil {
		// Fallback to manual deep copy on error
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		// Fallback to manual deep copy on error
		return c.deepCopy()
	}

	// Copy CLI-only fields that aren't serialized to YAML
	c.copyCLIFields(clone)

	return clone
}

// copyCLIFields copies CLI-only fields (yaml:"-") to the target config.
func (c *Config) copyCLIFields(target *Config) {
	target.Fix = c.Fix
	target.DryRun = c.DryRun
	target.Format = c.Format
	target.Jobs = c.Jobs
	target.NoBackups = c.NoBackups

	// Deep copy CLI-only slices
	if c.EnableProfiles != nil {
		target.EnableProfiles = make([]string, len(c.EnableProfiles))
		copy(target.EnableProfiles, c.EnableProfiles)
	}
	if c.DisableProfiles != nil {
		target.DisableProfiles = make([]string, len(c.DisableProfiles))
		copy(target.DisableProfiles, c.DisableProfiles)
	}
	if c.FixProfiles != nil {
		target.FixProfiles = make([]string, len(c.FixProfiles))
		copy(target.FixProfiles, c.FixProfiles)
	}
}

// deepCopy creates a manual deep copy of the configuration.
// This is used as a fallback when YAML round-trip fails.
func (c *Config) deepCopy() *Config {
	clone := &Config{
		SeverityDefault: c.SeverityDefault,
		Backups:         c.Backups, // BackupsConfig only has value types
		MaxPasses:       c.MaxPasses,
		Fix:             c.Fix,
		DryRun:          c.DryRun,
		Format:          c.Format,
		Jobs:            c.Jobs,
		NoBackups:       c.NoBackups,
	}

	// Deep copy Ignore slice
	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}

	// Deep copy Profiles map
	if c.Profiles != nil {
		clone.Profiles = make(map[string]ProfileConfig, len(c.Profiles))
		for k, v := range c.Profiles {
			clone.Profiles[k] = v.clone()
		}
	}

	// Deep copy EnableProfiles slice
	if c.EnableProfiles != nil {
		clone.EnableProfiles = make([]string, len(c.EnableProfiles))
		copy(clone.EnableProfiles, c.EnableProfiles)
	}

	// Deep copy DisableProfiles slice
	if c.DisableProfiles != nil {
		clone.DisableProfiles = make([]string, len(c.DisableProfiles))
		copy(clone.DisableProfiles, c.DisableProfiles)
	}

	// Deep copy FixProfiles slice
	if c.FixProfiles != nil {
		clone.FixProfiles = make([]string, len(c.FixProfiles))
		copy(clone.FixProfiles, c.FixProfiles)
	}

	return clone
}

// clone creates a deep copy of a ProfileConfig.
func (p ProfileConfig) clone() ProfileConfig {
	clone := ProfileConfig{
		Command: p.Command,
		Timeout: p.Timeout,
	}

	if p.Args != nil {
		clone.Args = make([]string, len(p.Args))
		copy(clone.Args, p.Args)
	}

	if p.Languages != nil {
		clone.Languages = make([]string, len(p.Languages))
		copy(clone.Languages, p.Languages)
	}

	if p.Extensions != nil {
		clone.Extensions = make([]string, len(p.Extensions))
		copy(clone.Extensions, p.Extensions)
	}

	if p.Enabled != nil {
		enabled := *p.Enabled
		clone.Enabled = &enabled
	}

	if p.Severity != nil {
		severity := *p.Severity
		clone.Severity = &severity
	}

	if p.AutoFix != nil {
		autoFix := *p.AutoFix
		clone.AutoFix = &autoFix
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

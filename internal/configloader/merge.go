package configloader

import "github.com/yaklabco/fmtlint/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Profile maps: deep merge, with override's fields taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base.
	result := *base

	// Scalars: override overwrites base if set (non-zero value).
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxPasses != 0 {
		result.MaxPasses = override.MaxPasses
	}

	// Booleans: false is the zero value, so a config file cannot unset
	// these once a lower layer set them. CLI flags still win because
	// they're merged last.
	if override.Fix {
		result.Fix = override.Fix
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Profiles: deep merge.
	result.Profiles = mergeProfiles(base.Profiles, override.Profiles)

	// Slices: override replaces base entirely if non-nil.
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableProfiles != nil {
		result.EnableProfiles = override.EnableProfiles
	}
	if override.DisableProfiles != nil {
		result.DisableProfiles = override.DisableProfiles
	}
	if override.FixProfiles != nil {
		result.FixProfiles = override.FixProfiles
	}

	return &result
}

// mergeProfiles performs deep merge of formatter profile configurations.
// Both maps are iterated, with override's values taking precedence.
func mergeProfiles(base, override map[string]config.ProfileConfig) map[string]config.ProfileConfig {
	if base == nil && override == nil {
		return nil
	}
	if base == nil {
		result := make(map[string]config.ProfileConfig, len(override))
		for key, val := range override {
			result[key] = val
		}
		return result
	}
	if override == nil {
		result := make(map[string]config.ProfileConfig, len(base))
		for key, val := range base {
			result[key] = val
		}
		return result
	}

	result := make(map[string]config.ProfileConfig, len(base)+len(override))

	for key, val := range base {
		result[key] = val
	}

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeProfileConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeProfileConfig merges individual profile configurations.
// override's values take precedence over base's values.
func mergeProfileConfig(base, override config.ProfileConfig) config.ProfileConfig {
	result := base

	if override.Command != "" {
		result.Command = override.Command
	}
	if override.Args != nil {
		result.Args = override.Args
	}
	if override.Languages != nil {
		result.Languages = override.Languages
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Timeout > 0 {
		result.Timeout = override.Timeout
	}
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

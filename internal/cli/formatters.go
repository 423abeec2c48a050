package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtlint/internal/configloader"
	"github.com/yaklabco/fmtlint/internal/logging"
	"github.com/yaklabco/fmtlint/pkg/config"
)

type formattersFlags struct {
	format string
}

const formatJSON = "json"

// profileInfo represents a formatter profile in JSON output.
type profileInfo struct {
	Name       string   `json:"name"`
	Command    string   `json:"command"`
	Args       []string `json:"args,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Enabled    bool     `json:"enabled"`
	Severity   string   `json:"severity"`
	Timeout    string   `json:"timeout"`
}

func newFormattersCommand() *cobra.Command {
	flags := &formattersFlags{}

	cmd := &cobra.Command{
		Use:   "formatters",
		Short: "List configured formatter profiles",
		Long: `List all configured formatter profiles with their commands, claimed
languages and extensions, resolved severity, and timeouts.

Profiles come from the built-in defaults merged with any discovered
configuration files (see 'fmtlint init').`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormatters(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func runFormatters(cmd *cobra.Command, flags *formattersFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	infos := collectProfileInfos(loadResult.Config)

	if flags.format == formatJSON {
		return outputProfilesJSON(infos)
	}

	logger := logging.NewInteractive()

	if len(infos) == 0 {
		logger.Info("no formatter profiles configured")
		logger.Info("run 'fmtlint init' to create a starter configuration")
		return nil
	}

	logger.Info("configured formatter profiles")

	for _, info := range infos {
		enabled := "yes"
		if !info.Enabled {
			enabled = "no"
		}
		logger.Info(info.Name,
			logging.FieldCommand, info.Command,
			logging.FieldLanguage, info.Languages,
			"extensions", info.Extensions,
			logging.FieldSeverity, info.Severity,
			logging.FieldTimeout, info.Timeout,
			"enabled", enabled,
		)
	}

	return nil
}

// collectProfileInfos resolves each configured profile to its effective
// settings, sorted by name for stable output.
func collectProfileInfos(cfg *config.Config) []profileInfo {
	if cfg == nil {
		return nil
	}

	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]profileInfo, 0, len(names))
	for _, name := range names {
		p := cfg.Profiles[name]

		severity := cfg.SeverityDefault
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		if p.Severity != nil {
			severity = *p.Severity
		}

		enabled := p.Command != ""
		if p.Enabled != nil {
			enabled = *p.Enabled
		}

		infos = append(infos, profileInfo{
			Name:       name,
			Command:    p.Command,
			Args:       p.Args,
			Languages:  p.Languages,
			Extensions: p.Extensions,
			Enabled:    enabled,
			Severity:   severity,
			Timeout:    p.EffectiveTimeout().String(),
		})
	}

	return infos
}

// outputProfilesJSON outputs profiles as a JSON array.
func outputProfilesJSON(infos []profileInfo) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding profiles: %w", err)
	}
	return nil
}

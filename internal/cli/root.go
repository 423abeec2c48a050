// Package cli provides the Cobra command structure for fmtlint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root fmtlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "fmtlint",
		Short: "Bridge external code formatters into fixable lint findings",
		Long: `fmtlint drives external code formatters (rustfmt and anything that
speaks the same JSON mismatch protocol) and turns each region the
formatter would rewrite into a precise, fixable finding.

Formatters are configured as profiles, each claiming a set of languages
and file extensions. fmtlint streams every checked file to the profile's
command, localizes the reported mismatches to exact byte ranges, and can
apply the formatter's expected text in place with conflict detection,
dry-run mode, and optional backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFormattersCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

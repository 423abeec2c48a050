package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtlint/internal/configloader"
	"github.com/yaklabco/fmtlint/internal/logging"
	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/fmtcheck"
	"github.com/yaklabco/fmtlint/pkg/langdetect"
	"github.com/yaklabco/fmtlint/pkg/lint"
	"github.com/yaklabco/fmtlint/pkg/parser"
	"github.com/yaklabco/fmtlint/pkg/reporter"
	"github.com/yaklabco/fmtlint/pkg/runner"
)

// Sentinel errors used to pick the process exit code without logging a
// spurious failure message.
var (
	// ErrIssuesFound is returned when formatting issues are found.
	ErrIssuesFound = errors.New("formatting issues found")

	// ErrWarningsFound is returned in strict mode when only warnings were found.
	ErrWarningsFound = errors.New("formatting warnings found")

	// ErrChecksFailed is returned when one or more formatter checks failed
	// to run to completion (broken output protocol, for example).
	ErrChecksFailed = errors.New("formatter checks failed")
)

type checkFlags struct {
	format         string
	ignore         []string
	enable         []string
	disable        []string
	fixProfiles    []string
	strict         bool
	noContext      bool
	compact        bool
	followSymlinks bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check files against their configured formatters",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check files against their configured external formatters.

By default, checks all files claimed by enabled formatter profiles in
the current directory and subdirectories. Specify paths to check
specific files or directories.

Examples:
  fmtlint check                    # Check current directory
  fmtlint check src/               # Check src directory
  fmtlint check main.rs            # Check single file
  fmtlint check --fix              # Check and apply formatter output
  fmtlint check --fix --dry-run    # Show fixes without applying
  fmtlint check --format json      # Output as JSON for CI
  fmtlint check --strict           # Treat warnings as errors`

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values. Only values explicitly
	// provided on the command line may override file or env config.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	cfg.Ignore = flags.ignore
	cfg.EnableProfiles = flags.enable
	cfg.DisableProfiles = flags.disable
	cfg.FixProfiles = flags.fixProfiles

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// Worker goroutines pick the logger back up from the context.
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	// One rule per configured formatter profile.
	registry := fmtcheck.BuildRegistry(finalCfg, logger)

	engine := lint.NewEngine(parser.NewAuto(), langdetect.New(), registry)
	pipeline := lint.NewPipeline(engine)
	checkRunner := runner.New(pipeline)

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		ExcludeGlobs:   finalCfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitInternalError:
		return ErrChecksFailed
	case ExitCheckErrors:
		return ErrIssuesFound
	case ExitCheckWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "apply the formatter's expected output")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "profile names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "profile names to disable")
	cmd.Flags().StringSliceVar(&flags.fixProfiles, "fix-profiles", nil,
		"limit auto-fix to specific profile names")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false,
		"traverse directory symlinks during discovery")
}

// Package main is the entry point for the fmtlint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/fmtlint/internal/cli"
	"github.com/yaklabco/fmtlint/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil {
		// The issue sentinels only carry the exit code; the reporter
		// already showed the findings.
		if !errors.Is(err, cli.ErrIssuesFound) && !errors.Is(err, cli.ErrWarningsFound) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
	}

	return cli.ExitCodeForError(err)
}

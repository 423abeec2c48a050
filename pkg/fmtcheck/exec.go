package fmtcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/fmtlint/internal/logging"
	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

const (
	// virtualPath names the stdin document in the --file-lines argument.
	virtualPath = "stdin"

	// reportedPath is the name formatters use for the stdin document in
	// their mismatch reports.
	reportedPath = "<stdin>"
)

// ExecError reports a formatter invocation that failed outside the
// mismatch protocol: the command could not be started, exited non-zero,
// or ran past its timeout. It is survivable; callers treat it as "no
// answer", not as a clean result or a finding.
type ExecError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// ProtocolError reports formatter output that violates the mismatch
// protocol: undecodable JSON, a report naming a file other than stdin,
// or more than one file record. Unlike ExecError it is not survivable;
// the check surfaces it as a rule error.
type ProtocolError struct {
	Command string
	Reason  string
}

func (e *ProtocolError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// ExecOracle runs an external formatter in check mode, feeding the
// document over stdin and decoding the JSON mismatch report from
// stdout.
type ExecOracle struct {
	// Command is the formatter executable, resolved via PATH.
	Command string

	// Args are passed before the flags the oracle appends itself.
	Args []string

	// Timeout bounds one invocation. Zero disables the bound.
	Timeout time.Duration
}

// NewExecOracle builds an oracle from a formatter profile.
func NewExecOracle(profile config.ProfileConfig) *ExecOracle {
	return &ExecOracle{
		Command: profile.Command,
		Args:    slices.Clone(profile.Args),
		Timeout: profile.EffectiveTimeout(),
	}
}

// Check invokes the formatter and decodes its mismatch report. The
// document is always sent whole; a non-nil scope narrows the report to
// the given lines via --file-lines. Stdin is fully written and closed
// before output is awaited, so formatters that read to EOF cannot
// deadlock against the report pipe.
func (o *ExecOracle) Check(ctx context.Context, text srctext.Text, scope []LineRange) ([]Mismatch, error) {
	args := slices.Clone(o.Args)
	args = append(args, "--emit", "json")
	if scope != nil {
		encoded, err := json.Marshal(fileLinesArg(scope))
		if err != nil {
			return nil, fmt.Errorf("encode file lines: %w", err)
		}
		args = append(args, "--file-lines", string(encoded))
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	logging.FromContext(ctx).Debug("invoking formatter",
		logging.FieldCommand, o.Command,
		"scoped", scope != nil)

	cmd := exec.CommandContext(ctx, o.Command, args...)
	cmd.Stdin = text.Reader()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ExecError{
			Command: o.Command,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return o.parseReport(stdout.Bytes())
}

// fileLinesEntry is one element of the --file-lines argument.
type fileLinesEntry struct {
	File  string `json:"file"`
	Range [2]int `json:"range"`
}

// fileLinesArg renders scope for the --file-lines flag. The stdin
// document is named "stdin" here even though reports for it come back
// under "<stdin>".
func fileLinesArg(scope []LineRange) []fileLinesEntry {
	entries := make([]fileLinesEntry, 0, len(scope))
	for _, lr := range scope {
		entries = append(entries, fileLinesEntry{
			File:  virtualPath,
			Range: [2]int{lr.Start, lr.End},
		})
	}
	return entries
}

// fileReport is one file's record in the formatter's mismatch report.
type fileReport struct {
	Name       string     `json:"name"`
	Mismatches []Mismatch `json:"mismatches"`
}

// parseReport decodes the formatter's report: a JSON array of per-file
// records. Checking a single stdin document must yield zero records
// (already formatted) or exactly one record named "<stdin>"; anything
// else, including undecodable output, is a protocol violation.
func (o *ExecOracle) parseReport(output []byte) ([]Mismatch, error) {
	var reports []fileReport
	if err := json.Unmarshal(output, &reports); err != nil {
		return nil, &ProtocolError{
			Command: o.Command,
			Reason:  fmt.Sprintf("undecodable mismatch report: %v", err),
		}
	}

	switch len(reports) {
	case 0:
		return nil, nil
	case 1:
		if reports[0].Name != reportedPath {
			return nil, &ProtocolError{
				Command: o.Command,
				Reason:  fmt.Sprintf("mismatch report names %q, want %q", reports[0].Name, reportedPath),
			}
		}
		return reports[0].Mismatches, nil
	default:
		return nil, &ProtocolError{
			Command: o.Command,
			Reason:  fmt.Sprintf("mismatch report covers %d files, want at most one", len(reports)),
		}
	}
}

package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/fix"
	"github.com/yaklabco/fmtlint/pkg/fsutil"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// DefaultMaxFixPasses is the maximum number of fix passes to prevent infinite loops.
// Formatter output is normally stable after one pass; more passes are only
// needed when conflicting edits were deferred or the formatter disagrees
// with itself.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCheckFailure indicates a parse or rule execution error.
	ErrCheckFailure = errors.New("check failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file through the safety pipeline.
type PipelineResult struct {
	// FileResult contains violations and edits from the FINAL pass.
	// For multi-pass fixing, this reflects the state after all passes.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the file content was changed.
	Modified bool

	// ModifiedContent is the new content after applying edits (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil if not in dry-run).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// FixPasses is the number of fix passes performed (for multi-pass fixing).
	FixPasses int

	// TotalEditsApplied is the total number of edits applied across all passes.
	TotalEditsApplied int
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "fixed (backup created)"
		}
		return "fixed"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FileResult != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// VerifyAfterFix runs one verification pass over the modified content
	// before it is written. The pass re-parses the file and applies rules
	// at the dry stage; a failure aborts the fix.
	VerifyAfterFix bool

	// MaxFixPasses limits the number of fix iterations to prevent infinite loops.
	// When conflicting edits are skipped, a subsequent pass may be able to fix them.
	// Set to 0 to use DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Fix:                 false,
		DryRun:              false,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		VerifyAfterFix:      true,
	}
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Engine is the check engine used for parsing and rule execution.
	Engine *Engine
}

// NewPipeline creates a new safety pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Multi-pass fix loop (if fix mode enabled):
//     a. Run the check engine at the current stage.
//     b. If no edits, exit loop.
//     c. Apply edits in memory and record them in an edit log.
//     d. Repeat with modified content until stable or max passes; later
//     passes carry the previous findings and edit log so rules can
//     scope their checks.
//  3. Optionally run a verification pass over the result.
//  4. Generate diff (if dry-run mode).
//  5. Check for concurrent modifications.
//  6. Create backup (if enabled).
//  7. Write the modified content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{
		Path: path,
	}

	// Step 1: Read and hash the original file.
	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.OriginalInfo = info

	if err := p.run(ctx, path, originalContent, cfg, opts, result); err != nil {
		return nil, err
	}
	if !result.Modified || result.Skipped {
		return result, nil
	}

	// Step 4: Handle dry-run mode.
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, result.ModifiedContent)
		return result, nil
	}

	// Step 5: Check for concurrent modifications before writing.
	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	// Step 6: Create backup if enabled.
	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	// Step 7: Write the modified content atomically.
	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent processes in-memory content without file I/O.
// This is useful for testing or when content is already loaded.
// It supports multi-pass fixing just like ProcessFile.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{
		Path: path,
	}

	if err := p.run(ctx, path, originalContent, cfg, opts, result); err != nil {
		return nil, err
	}
	if !result.Modified || result.Skipped {
		return result, nil
	}

	// Generate diff for review.
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, result.ModifiedContent)
	}

	return result, nil
}

// run executes the multi-pass fix loop and verification over in-memory
// content, populating result. On return, result.ModifiedContent holds the
// final content when the file was modified and not skipped.
func (p *Pipeline) run(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
	result *PipelineResult,
) error {
	// Determine max passes (use default if not set).
	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	// In fix mode the working content lives in a rope so rules can
	// resolve line ranges against the current state cheaply.
	var text srctext.Text
	var rope *srctext.Rope
	if opts.Fix {
		rope = srctext.NewRope(originalContent)
		text = srctext.FromRope(rope)
	} else {
		text = srctext.FromBytes(originalContent)
	}

	// A plain check run is a single full pass. A fixing run starts with
	// an initial fix pass that carries no history.
	var stage Stage = FullPass{}
	if opts.Fix {
		stage = InitialFixPass{}
	}

	var fileResult *FileResult

	// Step 2: Multi-pass fix loop.
	for range maxPasses {
		// Check for cancellation.
		select {
		case <-ctx.Done():
			return fmt.Errorf("processing cancelled: %w", ctx.Err())
		default:
		}

		// Run the check engine on current content.
		var checkErr error
		fileResult, checkErr = p.Engine.CheckFile(ctx, path, text, cfg, stage)
		if checkErr != nil {
			return fmt.Errorf("%w: %w", ErrCheckFailure, checkErr)
		}

		// If not in fix mode or no edits available, we're done.
		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		// Record the edits, then apply them in memory. The log is built
		// first because it describes the edits in pre-apply coordinates.
		log := fix.NewLog(fileResult.Edits)
		fix.ApplyToRope(rope, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true

		// The next pass checks only what this pass touched.
		stage = FixLoopPass{
			Violations: fileResult.Violations,
			Log:        log,
		}
	}

	// Store the final check result.
	result.FileResult = fileResult
	result.ModifiedContent = text.Bytes()

	// If no modifications were made, clear ModifiedContent.
	if !result.Modified {
		result.ModifiedContent = nil
		return nil
	}

	// Step 3: Optional verification pass over the modified content.
	if opts.VerifyAfterFix {
		verify, err := p.Engine.CheckFile(ctx, path, text, cfg, DryPass{})
		if err != nil {
			// Verification failed; abort fix.
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("verification failed: %v", err)
			result.Modified = false
			result.ModifiedContent = nil
			return nil
		}
		// Rules that run at the dry stage may still report issues.
		result.Violations = append(result.Violations, verify.Violations...)
	}

	return nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	var modified bool
	var err error

	if strict {
		modified, err = fsutil.CheckModified(ctx, info)
	} else {
		modified, err = fsutil.CheckModifiedQuick(ctx, info)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
// It uses errors.Is for robust error detection rather than string matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	// Check for file not found errors.
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	// Check for permission errors.
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrCheckFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		VerifyAfterFix:      true,
		MaxFixPasses:        cfg.MaxPasses,
	}
}

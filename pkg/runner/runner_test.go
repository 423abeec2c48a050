package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/fix"
	"github.com/yaklabco/fmtlint/pkg/lint"
	"github.com/yaklabco/fmtlint/pkg/runner"
)

// mockParser implements lint.Parser with a flat document tree.
type mockParser struct{}

func (p *mockParser) Parse(_ context.Context, _ string, content []byte) (*doctree.Tree, error) {
	return &doctree.Tree{
		Root: &doctree.Node{Kind: doctree.NodeDocument, EndOffset: len(content)},
	}, nil
}

// violationRule emits a fixed set of violations for every claimed file.
type violationRule struct {
	lint.BaseRule
	viols []lint.Violation
}

func (r *violationRule) Apply(_ *lint.RunContext) ([]lint.Violation, error) {
	// Return a copy so concurrent workers never share slices the engine
	// mutates.
	result := make([]lint.Violation, len(r.viols))
	copy(result, r.viols)
	return result, nil
}

// fixableRule emits violations that carry fix edits.
type fixableRule struct {
	lint.BaseRule
	viols []lint.Violation
}

func (r *fixableRule) Apply(_ *lint.RunContext) ([]lint.Violation, error) {
	result := make([]lint.Violation, len(r.viols))
	for i, v := range r.viols {
		result[i] = v
		if len(v.FixEdits) > 0 {
			result[i].FixEdits = make([]fix.TextEdit, len(v.FixEdits))
			copy(result[i].FixEdits, v.FixEdits)
		}
	}
	return result, nil
}

func newTestRunner(registry *lint.Registry) *runner.Runner {
	engine := lint.NewEngine(&mockParser{}, nil, registry)
	return runner.New(lint.NewPipeline(engine))
}

func TestNew(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(&mockParser{}, nil, lint.NewRegistry())
	pipeline := lint.NewPipeline(engine)

	r := runner.New(pipeline)

	if r.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newTestRunner(lint.NewRegistry())

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("FilesDiscovered = %d, want 0", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 0 {
		t.Errorf("len(Files) = %d, want 0", len(result.Files))
	}
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcFile := filepath.Join(dir, "main.rs")
	if err := os.WriteFile(srcFile, []byte("fn main() {}\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	r := newTestRunner(lint.NewRegistry())

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 1 {
		t.Errorf("FilesDiscovered = %d, want 1", result.Stats.FilesDiscovered)
	}
	if result.Stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", result.Stats.FilesProcessed)
	}
	if len(result.Files) != 1 {
		t.Errorf("len(Files) = %d, want 1", len(result.Files))
	}
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{"a.rs", "b.rs", "c.rs", "d.rs", "e.rs"}
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.WriteFile(path, []byte("fn main() {}\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	r := newTestRunner(lint.NewRegistry())

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != len(files) {
		t.Errorf("FilesDiscovered = %d, want %d", result.Stats.FilesDiscovered, len(files))
	}
	if result.Stats.FilesProcessed != len(files) {
		t.Errorf("FilesProcessed = %d, want %d", result.Stats.FilesProcessed, len(files))
	}
}

func TestRunner_Run_WithViolations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcFile := filepath.Join(dir, "main.rs")
	if err := os.WriteFile(srcFile, []byte("fn main() {}\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	registry := lint.NewRegistry()
	registry.Register(&violationRule{
		BaseRule: lint.NewBaseRule("errfmt", "always fails", nil, []string{".rs"}, false),
		viols:    []lint.Violation{{Check: "unexpected-formatting", Message: "error issue"}},
	})
	registry.Register(&violationRule{
		BaseRule: lint.NewBaseRule("warnfmt", "always warns", nil, []string{".rs"}, false),
		viols:    []lint.Violation{{Check: "unexpected-formatting", Message: "warning issue"}},
	})

	r := newTestRunner(registry)

	// One profile is configured as error severity; the other keeps the
	// config-wide warning default.
	cfg := config.NewConfig()
	errSeverity := string(config.SeverityError)
	cfg.Profiles["errfmt"] = config.ProfileConfig{Severity: &errSeverity}

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.ViolationsTotal != 2 {
		t.Errorf("ViolationsTotal = %d, want 2", result.Stats.ViolationsTotal)
	}
	if result.Stats.FilesWithIssues != 1 {
		t.Errorf("FilesWithIssues = %d, want 1", result.Stats.FilesWithIssues)
	}
	if result.Stats.ViolationsBySeverity["error"] != 1 {
		t.Errorf("error count = %d, want 1", result.Stats.ViolationsBySeverity["error"])
	}
	if result.Stats.ViolationsBySeverity["warning"] != 1 {
		t.Errorf("warning count = %d, want 1", result.Stats.ViolationsBySeverity["warning"])
	}
	if !result.HasFailures() {
		t.Error("HasFailures() should be true")
	}
	if !result.HasIssues() {
		t.Error("HasIssues() should be true")
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fileCount := 20
	for idx := range fileCount {
		name := string(rune('a'+idx%26)) + string(rune('0'+idx/26)) + ".rs"
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("fn main() {}\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	registry := lint.NewRegistry()
	registry.Register(&violationRule{
		BaseRule: lint.NewBaseRule("rust", "rustfmt check", nil, []string{".rs"}, false),
		viols:    []lint.Violation{{Check: "unexpected-formatting", Message: "issue"}},
	})

	r := newTestRunner(registry)
	cfg := config.NewConfig()

	ctx := context.Background()
	optsSerial := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
		Jobs:       1,
	}

	resultSerial, err := r.Run(ctx, optsSerial)
	if err != nil {
		t.Fatalf("Run(serial) error = %v", err)
	}

	optsParallel := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
		Jobs:       4,
	}

	resultParallel, err := r.Run(ctx, optsParallel)
	if err != nil {
		t.Fatalf("Run(parallel) error = %v", err)
	}

	if resultSerial.Stats.FilesDiscovered != resultParallel.Stats.FilesDiscovered {
		t.Errorf("FilesDiscovered mismatch: serial=%d, parallel=%d",
			resultSerial.Stats.FilesDiscovered, resultParallel.Stats.FilesDiscovered)
	}
	if resultSerial.Stats.ViolationsTotal != resultParallel.Stats.ViolationsTotal {
		t.Errorf("ViolationsTotal mismatch: serial=%d, parallel=%d",
			resultSerial.Stats.ViolationsTotal, resultParallel.Stats.ViolationsTotal)
	}

	if len(resultSerial.Files) != len(resultParallel.Files) {
		t.Fatalf("file count mismatch: serial=%d, parallel=%d",
			len(resultSerial.Files), len(resultParallel.Files))
	}
	for i := range resultSerial.Files {
		if resultSerial.Files[i].Path != resultParallel.Files[i].Path {
			t.Errorf("file[%d] path mismatch: serial=%s, parallel=%s",
				i, resultSerial.Files[i].Path, resultParallel.Files[i].Path)
		}
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for idx := range 10 {
		path := filepath.Join(dir, string(rune('a'+idx))+".rs")
		if err := os.WriteFile(path, []byte("fn main() {}\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	r := newTestRunner(lint.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	_, err := r.Run(ctx, opts)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

// countingParser counts parse calls for concurrency testing.
type countingParser struct {
	count *atomic.Int32
}

func (p *countingParser) Parse(_ context.Context, _ string, content []byte) (*doctree.Tree, error) {
	p.count.Add(1)
	return &doctree.Tree{
		Root: &doctree.Node{Kind: doctree.NodeDocument, EndOffset: len(content)},
	}, nil
}

func TestRunner_Run_ConcurrentProcessing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fileCount := 50
	for idx := range fileCount {
		name := "file" + string(rune('a'+idx%26)) + string(rune('0'+idx/26)) + ".rs"
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("fn main() {}\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	var processCount atomic.Int32
	engine := lint.NewEngine(&countingParser{count: &processCount}, nil, lint.NewRegistry())
	r := runner.New(lint.NewPipeline(engine))

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
		Jobs:       8,
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesProcessed != fileCount {
		t.Errorf("FilesProcessed = %d, want %d", result.Stats.FilesProcessed, fileCount)
	}
	if int(processCount.Load()) != fileCount {
		t.Errorf("parser called %d times, want %d", processCount.Load(), fileCount)
	}
}

func TestRunner_Run_WithFixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcFile := filepath.Join(dir, "main.rs")
	if err := os.WriteFile(srcFile, []byte("hello"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	registry := lint.NewRegistry()
	registry.Register(&fixableRule{
		BaseRule: lint.NewBaseRule("rust", "rustfmt check", nil, []string{".rs"}, true),
		viols: []lint.Violation{
			{
				Check:    "unexpected-formatting",
				Message:  "fix needed",
				FixEdits: []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "world"}},
			},
		},
	})

	r := newTestRunner(registry)

	cfg := config.NewConfig()
	cfg.Fix = true

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 1 {
		t.Errorf("FilesModified = %d, want 1", result.Stats.FilesModified)
	}
	if result.Stats.EditsApplied == 0 {
		t.Error("EditsApplied = 0, want > 0")
	}

	content, err := os.ReadFile(srcFile)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(content) != "world" {
		t.Errorf("content = %q, want %q", content, "world")
	}
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcFile := filepath.Join(dir, "main.rs")
	originalContent := []byte("hello")
	if err := os.WriteFile(srcFile, originalContent, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	registry := lint.NewRegistry()
	registry.Register(&fixableRule{
		BaseRule: lint.NewBaseRule("rust", "rustfmt check", nil, []string{".rs"}, true),
		viols: []lint.Violation{
			{
				Check:    "unexpected-formatting",
				Message:  "fix needed",
				FixEdits: []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "world"}},
			},
		},
	})

	r := newTestRunner(registry)

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 0 {
		t.Errorf("FilesModified = %d, want 0 for dry-run", result.Stats.FilesModified)
	}

	content, err := os.ReadFile(srcFile)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(content) != string(originalContent) {
		t.Errorf("file was modified in dry-run mode: got %q, want %q", content, originalContent)
	}

	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file outcome")
	}
	if result.Files[0].Result == nil || result.Files[0].Result.Diff == nil {
		t.Error("expected diff in dry-run mode")
	}
}

func TestResult_HasFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name: "warnings only",
			result: &runner.Result{
				Stats: runner.Stats{
					ViolationsBySeverity: map[string]int{"warning": 5},
				},
			},
			want: false,
		},
		{
			name: "with errors",
			result: &runner.Result{
				Stats: runner.Stats{
					ViolationsBySeverity: map[string]int{"error": 1, "warning": 5},
				},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.HasFailures(); got != tt.want {
				t.Errorf("HasFailures() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResult_HasIssues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name: "no issues",
			result: &runner.Result{
				Stats: runner.Stats{ViolationsTotal: 0},
			},
			want: false,
		},
		{
			name: "with issues",
			result: &runner.Result{
				Stats: runner.Stats{ViolationsTotal: 3},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.HasIssues(); got != tt.want {
				t.Errorf("HasIssues() = %v, want %v", got, tt.want)
			}
		})
	}
}

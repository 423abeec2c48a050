package lint_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/fix"
	"github.com/yaklabco/fmtlint/pkg/lint"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// mockParser implements lint.Parser for testing.
type mockParser struct {
	parseFunc func(ctx context.Context, path string, content []byte) (*doctree.Tree, error)
}

func (p *mockParser) Parse(ctx context.Context, path string, content []byte) (*doctree.Tree, error) {
	if p.parseFunc != nil {
		return p.parseFunc(ctx, path, content)
	}
	// Default: a single document node spanning the whole content.
	root := &doctree.Node{
		Kind:      doctree.NodeDocument,
		EndOffset: len(content),
		EndPoint:  srctext.Point{Row: bytes.Count(content, []byte("\n"))},
	}
	return &doctree.Tree{Root: root}, nil
}

// mockDetector implements lint.Detector for testing.
type mockDetector struct {
	language string
}

func (d *mockDetector) Detect(_ string, _ []byte) string {
	return d.language
}

// violationRule is a test rule that produces fixed violations.
type violationRule struct {
	lint.BaseRule
	viols []lint.Violation
	err   error
}

func (r *violationRule) Apply(_ *lint.RunContext) ([]lint.Violation, error) {
	return r.viols, r.err
}

// spaceRule reports each run of two spaces and offers to collapse it.
// Because it derives findings from the current content, fixes converge.
type spaceRule struct {
	lint.BaseRule
	stages []string
}

func (r *spaceRule) Apply(rc *lint.RunContext) ([]lint.Violation, error) {
	r.stages = append(r.stages, rc.Stage.String())

	if _, ok := rc.Stage.(lint.DryPass); ok {
		return nil, nil
	}

	content := rc.Text.Bytes()
	idx := bytes.Index(content, []byte("  "))
	if idx < 0 {
		return nil, nil
	}

	v := lint.NewViolationAt(r.Name(), rc.Path,
		srctext.Range{StartOffset: idx, EndOffset: idx + 2}, "double space").
		WithEdit(fix.Replace(idx, idx+2, " ")).
		Build()
	return []lint.Violation{v}, nil
}

func newSpaceRule() *spaceRule {
	return &spaceRule{
		BaseRule: lint.NewBaseRule("spacefmt", "collapses double spaces", nil, []string{".txt"}, true),
	}
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	detector := &mockDetector{}
	registry := lint.NewRegistry()

	engine := lint.NewEngine(parser, detector, registry)

	if engine.Parser != parser {
		t.Error("Parser mismatch")
	}
	if engine.Detector != detector {
		t.Error("Detector mismatch")
	}
	if engine.Registry != registry {
		t.Error("Registry mismatch")
	}
}

func TestEngine_CheckFile_Basic(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()
	engine := lint.NewEngine(parser, nil, registry)

	cfg := config.NewConfig()
	text := srctext.FromBytes([]byte("fn main() {}\n"))
	result, err := engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.FullPass{})

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if result.Path != "test.rs" {
		t.Errorf("Path = %q, want test.rs", result.Path)
	}

	if result.Tree == nil {
		t.Error("expected Tree to be set")
	}
}

func TestEngine_CheckFile_ParseError(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("parse failed")
	parser := &mockParser{
		parseFunc: func(_ context.Context, _ string, _ []byte) (*doctree.Tree, error) {
			return nil, parseErr
		},
	}
	registry := lint.NewRegistry()
	engine := lint.NewEngine(parser, nil, registry)

	cfg := config.NewConfig()
	text := srctext.FromBytes([]byte("fn main() {}\n"))
	_, err := engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.FullPass{})

	if err == nil {
		t.Fatal("expected error")
	}

	if !errors.Is(err, parseErr) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestEngine_CheckFile_WithViolations(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	rule := &violationRule{
		BaseRule: lint.NewBaseRule("testfmt", "", nil, []string{".rs"}, false),
		viols: []lint.Violation{
			{Message: "test issue", StartLine: 1, StartColumn: 1},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(parser, nil, registry)
	cfg := config.NewConfig()

	text := srctext.FromBytes([]byte("fn main() {}\n"))
	result, err := engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.FullPass{})

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if !result.HasIssues() {
		t.Error("expected issues")
	}

	if result.IssueCount() != 1 {
		t.Errorf("expected 1 issue, got %d", result.IssueCount())
	}

	if result.Violations[0].Message != "test issue" {
		t.Errorf("Message = %q, want test issue", result.Violations[0].Message)
	}

	// Engine fills in profile and file path when the rule leaves them empty.
	if result.Violations[0].Profile != "testfmt" {
		t.Errorf("Profile = %q, want testfmt", result.Violations[0].Profile)
	}
	if result.Violations[0].FilePath != "test.rs" {
		t.Errorf("FilePath = %q, want test.rs", result.Violations[0].FilePath)
	}
}

func TestEngine_CheckFile_ClaimRouting(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	rustRule := &violationRule{
		BaseRule: lint.NewBaseRule("rust", "", []string{"rust"}, []string{".rs"}, false),
		viols:    []lint.Violation{{Message: "rust issue"}},
	}
	tomlRule := &violationRule{
		BaseRule: lint.NewBaseRule("toml", "", []string{"toml"}, []string{".toml"}, false),
		viols:    []lint.Violation{{Message: "toml issue"}},
	}
	registry.Register(rustRule)
	registry.Register(tomlRule)

	engine := lint.NewEngine(parser, nil, registry)
	cfg := config.NewConfig()

	text := srctext.FromBytes([]byte("fn main() {}\n"))
	result, err := engine.CheckFile(context.Background(), "main.rs", text, cfg, lint.FullPass{})

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if result.IssueCount() != 1 {
		t.Fatalf("expected 1 issue, got %d", result.IssueCount())
	}
	if result.Violations[0].Message != "rust issue" {
		t.Errorf("Message = %q, want rust issue", result.Violations[0].Message)
	}
}

func TestEngine_CheckFile_LanguageClaim(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	// Rule claims the language only, not the extension.
	rule := &violationRule{
		BaseRule: lint.NewBaseRule("rust", "", []string{"rust"}, nil, false),
		viols:    []lint.Violation{{Message: "rust issue"}},
	}
	registry.Register(rule)

	engine := lint.NewEngine(parser, &mockDetector{language: "rust"}, registry)
	cfg := config.NewConfig()

	// Extension alone would not match.
	text := srctext.FromBytes([]byte("fn main() {}\n"))
	result, err := engine.CheckFile(context.Background(), "script", text, cfg, lint.FullPass{})

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if result.Language != "rust" {
		t.Errorf("Language = %q, want rust", result.Language)
	}
	if result.IssueCount() != 1 {
		t.Errorf("expected 1 issue, got %d", result.IssueCount())
	}
}

func TestEngine_CheckFile_SeverityOverride(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	rule := &violationRule{
		BaseRule: lint.NewBaseRule("testfmt", "", nil, []string{".rs"}, false),
		viols: []lint.Violation{
			{Message: "test", Severity: config.SeverityInfo},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(parser, nil, registry)
	cfg := config.NewConfig()
	severity := string(config.SeverityError)
	cfg.Profiles["testfmt"] = config.ProfileConfig{Severity: &severity}

	text := srctext.FromBytes([]byte("fn main() {}\n"))
	result, err := engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.FullPass{})

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	// Severity should be overridden by resolved config.
	if result.Violations[0].Severity != config.SeverityError {
		t.Errorf("Severity = %v, want error", result.Violations[0].Severity)
	}
}

func TestEngine_CheckFile_RuleError(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	ruleErr := errors.New("rule failed")
	rule := &violationRule{
		BaseRule: lint.NewBaseRule("testfmt", "", nil, []string{".rs"}, false),
		err:      ruleErr,
	}
	registry.Register(rule)

	engine := lint.NewEngine(parser, nil, registry)
	cfg := config.NewConfig()

	text := srctext.FromBytes([]byte("fn main() {}\n"))
	result, err := engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.FullPass{})

	if err != nil {
		t.Fatalf("CheckFile should not return error for rule errors: %v", err)
	}

	if !errors.Is(result.RuleErrors["testfmt"], ruleErr) {
		t.Errorf("expected rule error to be recorded")
	}
}

func TestEngine_CheckFile_CollectsEditsOnlyWhenFixing(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}

	makeEngine := func() (*lint.Engine, *violationRule) {
		registry := lint.NewRegistry()
		rule := &violationRule{
			BaseRule: lint.NewBaseRule("testfmt", "", nil, []string{".rs"}, true),
			viols: []lint.Violation{
				{
					Message:  "bad formatting",
					FixEdits: []fix.TextEdit{fix.Replace(0, 2, "fn")},
				},
			},
		}
		registry.Register(rule)
		return lint.NewEngine(parser, nil, registry), rule
	}

	text := srctext.FromBytes([]byte("Fn main() {}\n"))

	// Without --fix, edits are not collected.
	engine, _ := makeEngine()
	cfg := config.NewConfig()
	result, err := engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.FullPass{})
	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}
	if result.HasFixes() {
		t.Error("expected no collected edits without fix mode")
	}

	// With --fix, edits are prepared.
	engine, _ = makeEngine()
	cfg = config.NewConfig()
	cfg.Fix = true
	result, err = engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.InitialFixPass{})
	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}
	if !result.HasFixes() {
		t.Fatal("expected collected edits in fix mode")
	}
	if result.FixableCount() != 1 {
		t.Errorf("FixableCount = %d, want 1", result.FixableCount())
	}
}

func TestEngine_CheckFile_ConflictingEditsFiltered(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	rule := &violationRule{
		BaseRule: lint.NewBaseRule("testfmt", "", nil, []string{".rs"}, true),
		viols: []lint.Violation{
			{Message: "first", FixEdits: []fix.TextEdit{fix.Replace(0, 4, "aa")}},
			{Message: "second", FixEdits: []fix.TextEdit{fix.Replace(2, 6, "bb")}},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(parser, nil, registry)
	cfg := config.NewConfig()
	cfg.Fix = true

	text := srctext.FromBytes([]byte("fn main() {}\n"))
	result, err := engine.CheckFile(context.Background(), "test.rs", text, cfg, lint.InitialFixPass{})

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if len(result.Edits) != 1 {
		t.Errorf("expected 1 accepted edit, got %d", len(result.Edits))
	}
	if len(result.SkippedEdits) != 1 {
		t.Errorf("expected 1 skipped edit, got %d", len(result.SkippedEdits))
	}
	if !result.EditConflicts {
		t.Error("expected EditConflicts to be set")
	}
}

func TestEngine_CheckFile_ContextCancellation(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	rule := &violationRule{
		BaseRule: lint.NewBaseRule("testfmt", "", nil, []string{".rs"}, false),
	}
	registry.Register(rule)

	engine := lint.NewEngine(parser, nil, registry)
	cfg := config.NewConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := srctext.FromBytes([]byte("fn main() {}\n"))
	_, err := engine.CheckFile(ctx, "test.rs", text, cfg, lint.FullPass{})

	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

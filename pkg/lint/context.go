package lint

import (
	"context"

	"github.com/yaklabco/fmtlint/pkg/config"
	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// RunContext provides all context needed by a rule to check one file.
//
// Design note: RunContext stores context.Context as a field (Ctx) rather than
// passing it as a method parameter. This is acceptable because RunContext is
// a short-lived parameter object created per-rule-invocation, not a long-lived
// struct. This design simplifies the Rule interface (single Apply method) while
// still providing cancellation support via the Cancelled() helper.
type RunContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Path is the file path as reported in violations.
	Path string

	// Text is the current content of the file being checked.
	Text srctext.Text

	// Tree is the structural tree of the current content.
	Tree *doctree.Tree

	// Root is the tree root node (convenience alias for Tree.Root).
	Root *doctree.Node

	// Language is the detected language of the file (may be empty).
	Language string

	// Stage describes which phase of the run this application belongs to.
	Stage Stage

	// Config is the resolved configuration.
	Config *config.Config

	// Profile is the formatter profile for the applying rule (may be nil).
	Profile *config.ProfileConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry
}

// NewRunContext creates a RunContext for the given file and configuration.
func NewRunContext(
	ctx context.Context,
	path string,
	text srctext.Text,
	tree *doctree.Tree,
	cfg *config.Config,
	profile *config.ProfileConfig,
) *RunContext {
	var root *doctree.Node
	if tree != nil {
		root = tree.Root
	}

	return &RunContext{
		Ctx:     ctx,
		Path:    path,
		Text:    text,
		Tree:    tree,
		Root:    root,
		Stage:   FullPass{},
		Config:  cfg,
		Profile: profile,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RunContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

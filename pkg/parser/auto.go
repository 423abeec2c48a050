// Package parser routes each checked file to a concrete document
// parser: Markdown files get the goldmark-backed block parser, all
// other code-like text gets the delimiter-nesting lexical parser.
package parser

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/parser/lexical"
	"github.com/yaklabco/fmtlint/pkg/parser/markdown"
)

// Auto selects a parser by file extension. It is safe for concurrent
// use.
type Auto struct {
	markdown *markdown.Parser
	lexical  *lexical.Parser
}

// NewAuto returns a routing parser with both backends ready.
func NewAuto() *Auto {
	return &Auto{
		markdown: markdown.New(),
		lexical:  lexical.New(),
	}
}

// Parse routes content to the parser matching the path's extension.
func (a *Auto) Parse(ctx context.Context, path string, content []byte) (*doctree.Tree, error) {
	if isMarkdownPath(path) {
		return a.markdown.Parse(ctx, path, content)
	}
	return a.lexical.Parse(ctx, path, content)
}

func isMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	default:
		return false
	}
}

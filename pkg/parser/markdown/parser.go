// Package markdown parses Markdown documents into the shared document
// tree. Parsing is delegated to goldmark; the resulting AST is reduced
// to block-level nodes whose byte spans cover whole source lines, which
// is the granularity formatter mismatches are reported at.
package markdown

import (
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/fmtlint/pkg/doctree"
)

// Parser converts Markdown content into document trees. It is safe for
// concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// New returns a Markdown parser. GitHub Flavored Markdown extensions are
// enabled; GFM is a superset of CommonMark, so plain documents parse
// identically.
func New() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse parses content and returns its block structure. The root covers
// the entire input; headings, paragraphs, code blocks, lists, and the
// other block kinds become children with whole-line spans.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*doctree.Tree, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	doc := p.md.Parser().Parse(text.NewReader(content))

	m := newMapper(content)
	return &doctree.Tree{Root: m.mapDocument(doc)}, nil
}

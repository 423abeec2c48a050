// Package lexical parses code-like text into the shared document tree by
// nesting balanced bracket pairs. It is language-agnostic: it recognizes
// common string and comment forms so that brackets inside them do not
// open or close groups, and it tolerates unbalanced input rather than
// reporting errors.
package lexical

import (
	"context"

	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// Parser builds delimiter-nesting trees. The zero value is ready to use
// and safe for concurrent use.
type Parser struct{}

// New returns a lexical parser.
func New() *Parser {
	return &Parser{}
}

// Parse scans content and returns a tree whose Group nodes correspond to
// balanced (), [], and {} pairs outside strings and comments. String
// literals and comments become Span leaves. A closer that does not match
// the innermost open group is treated as plain text, and groups still
// open at end of input are closed there.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*doctree.Tree, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s := &scanner{content: content}
	return &doctree.Tree{Root: s.scan()}, nil
}

// scanner performs a single pass over the content, maintaining the stack
// of currently open groups and the current row/column position.
type scanner struct {
	content []byte
	pos     int
	point   srctext.Point

	stack []*doctree.Node
}

func (s *scanner) scan() *doctree.Node {
	root := &doctree.Node{Kind: doctree.NodeDocument}
	s.stack = []*doctree.Node{root}

	for s.pos < len(s.content) {
		c := s.content[s.pos]
		switch {
		case c == '"' || c == '`':
			s.scanString(c)
		case c == '\'':
			if !s.tryCharLiteral() {
				s.advance()
			}
		case c == '/' && s.peek(1) == '/':
			s.scanLineComment()
		case c == '/' && s.peek(1) == '*':
			s.scanBlockComment()
		case c == '(' || c == '[' || c == '{':
			s.openGroup(c)
		case c == ')' || c == ']' || c == '}':
			s.closeGroup(c)
		default:
			s.advance()
		}
	}

	for len(s.stack) > 1 {
		s.pop(len(s.content), s.point)
	}

	root.EndOffset = len(s.content)
	root.EndPoint = s.point
	return root
}

// openGroup starts a Group node at the opening delimiter and makes it
// the innermost open group.
func (s *scanner) openGroup(delim byte) {
	node := &doctree.Node{
		Kind:        doctree.NodeGroup,
		Delim:       delim,
		StartOffset: s.pos,
		StartPoint:  s.point,
	}
	s.top().AppendChild(node)
	s.stack = append(s.stack, node)
	s.advance()
}

// closeGroup closes the innermost open group when c matches its opening
// delimiter. An unmatched closer is plain text.
func (s *scanner) closeGroup(c byte) {
	s.advance()
	if len(s.stack) > 1 && closerFor(s.top().Delim) == c {
		s.pop(s.pos, s.point)
	}
}

func (s *scanner) pop(end int, at srctext.Point) {
	node := s.top()
	node.EndOffset = end
	node.EndPoint = at
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *scanner) top() *doctree.Node {
	return s.stack[len(s.stack)-1]
}

// scanString consumes a quoted literal, including both quotes, and emits
// it as a Span. A backslash escapes the next byte. An unterminated
// literal ends at the newline so a stray quote cannot swallow the rest
// of the file. Backtick literals are raw: no escapes, and they may span
// lines.
func (s *scanner) scanString(quote byte) {
	start, startPoint := s.pos, s.point
	s.advance()
	for s.pos < len(s.content) {
		c := s.content[s.pos]
		if c == '\\' && quote != '`' && s.pos+1 < len(s.content) {
			s.advance()
			s.advance()
			continue
		}
		if c == '\n' && quote != '`' {
			break
		}
		s.advance()
		if c == quote {
			break
		}
	}
	s.emitSpan(start, startPoint)
}

// tryCharLiteral consumes a character literal such as 'a' or '\n'. The
// closing quote must follow a single, possibly escaped, byte; lifetime
// markers and apostrophes in prose fail that test and stay plain text.
func (s *scanner) tryCharLiteral() bool {
	end := s.pos + 2
	if end < len(s.content) && s.content[s.pos+1] == '\\' {
		end++
	}
	if end >= len(s.content) || s.content[end] != '\'' {
		return false
	}

	start, startPoint := s.pos, s.point
	for s.pos <= end {
		s.advance()
	}
	s.emitSpan(start, startPoint)
	return true
}

// scanLineComment consumes a // comment up to, but not including, the
// terminating newline.
func (s *scanner) scanLineComment() {
	start, startPoint := s.pos, s.point
	for s.pos < len(s.content) && s.content[s.pos] != '\n' {
		s.advance()
	}
	s.emitSpan(start, startPoint)
}

// scanBlockComment consumes a /* */ comment, honoring nesting. A
// comment left open runs to end of input.
func (s *scanner) scanBlockComment() {
	start, startPoint := s.pos, s.point
	s.advance()
	s.advance()
	depth := 1
	for s.pos < len(s.content) && depth > 0 {
		switch {
		case s.content[s.pos] == '/' && s.peek(1) == '*':
			depth++
			s.advance()
			s.advance()
		case s.content[s.pos] == '*' && s.peek(1) == '/':
			depth--
			s.advance()
			s.advance()
		default:
			s.advance()
		}
	}
	s.emitSpan(start, startPoint)
}

// emitSpan attaches a Span leaf covering [start, s.pos) to the innermost
// open group.
func (s *scanner) emitSpan(start int, startPoint srctext.Point) {
	s.top().AppendChild(&doctree.Node{
		Kind:        doctree.NodeSpan,
		StartOffset: start,
		EndOffset:   s.pos,
		StartPoint:  startPoint,
		EndPoint:    s.point,
	})
}

func (s *scanner) advance() {
	if s.content[s.pos] == '\n' {
		s.point.Row++
		s.point.Column = 0
	} else {
		s.point.Column++
	}
	s.pos++
}

func (s *scanner) peek(ahead int) byte {
	if s.pos+ahead >= len(s.content) {
		return 0
	}
	return s.content[s.pos+ahead]
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

package markdown

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

// unset marks a node whose span has not been resolved yet. Goldmark
// records source lines only for leaf blocks, so containers and markers
// start unset and are resolved in later passes.
const unset = -1

// mapper converts a goldmark AST into the shared document tree. Spans
// are widened to whole lines so a node covers its markers (heading
// hashes, list bullets, blockquote angles) and not just its text.
type mapper struct {
	content []byte
	starts  []int
}

func newMapper(content []byte) *mapper {
	newlines := srctext.NewlineOffsets(content)
	starts := make([]int, 1, len(newlines)+1)
	for _, nl := range newlines {
		starts = append(starts, nl+1)
	}
	return &mapper{content: content, starts: starts}
}

// mapDocument builds the tree and resolves spans in four passes: direct
// spans from goldmark line segments, container spans lifted from
// children, gap filling for nodes goldmark records no position for
// (thematic breaks, empty blocks), and finally row/column points.
func (m *mapper) mapDocument(doc ast.Node) *doctree.Node {
	root := &doctree.Node{
		Kind:      doctree.NodeDocument,
		EndOffset: len(m.content),
	}
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		root.AppendChild(m.mapBlock(child))
	}

	for c := root.FirstChild; c != nil; c = c.Next {
		m.liftChildSpans(c)
	}
	m.fillGaps(root)
	m.assignPoints(root)
	return root
}

func (m *mapper) mapBlock(gmn ast.Node) *doctree.Node {
	node := &doctree.Node{Kind: kindFor(gmn), StartOffset: unset, EndOffset: unset}

	if node.Kind != doctree.NodeRaw {
		for child := gmn.FirstChild(); child != nil; child = child.NextSibling() {
			if child.Type() != ast.TypeBlock {
				continue
			}
			node.AppendChild(m.mapBlock(child))
		}
	}

	if lines := gmn.Lines(); lines.Len() > 0 {
		start, end := m.snapToLines(lines.At(0).Start, lines.At(lines.Len()-1).Stop)
		if node.Kind == doctree.NodeCodeBlock {
			start, end = m.extendFences(start, end)
		}
		node.StartOffset, node.EndOffset = start, end
	}
	return node
}

func kindFor(gmn ast.Node) doctree.NodeKind {
	switch gmn.(type) {
	case *ast.Heading:
		return doctree.NodeHeading
	case *ast.Paragraph, *ast.TextBlock:
		return doctree.NodeParagraph
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return doctree.NodeCodeBlock
	case *ast.List:
		return doctree.NodeList
	case *ast.ListItem:
		return doctree.NodeListItem
	case *ast.Blockquote:
		return doctree.NodeBlockquote
	case *ast.ThematicBreak:
		return doctree.NodeThematicBreak
	case *ast.HTMLBlock:
		return doctree.NodeHTMLBlock
	default:
		return doctree.NodeRaw
	}
}

// liftChildSpans assigns container nodes the union of their children's
// resolved spans. Lists and list items carry no line segments of their
// own.
func (m *mapper) liftChildSpans(n *doctree.Node) {
	for c := n.FirstChild; c != nil; c = c.Next {
		m.liftChildSpans(c)
	}
	if n.StartOffset != unset {
		return
	}

	var first, last *doctree.Node
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.StartOffset == unset {
			continue
		}
		if first == nil {
			first = c
		}
		last = c
	}
	if first != nil {
		n.StartOffset, n.EndOffset = first.StartOffset, last.EndOffset
	}
}

// fillGaps resolves nodes that are still unset by giving each the
// non-blank lines between its resolved neighbors. Parents are resolved
// before their children are visited, so the enclosing span is always
// known.
func (m *mapper) fillGaps(n *doctree.Node) {
	cursor := n.StartOffset
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.StartOffset == unset {
			limit := n.EndOffset
			for next := c.Next; next != nil; next = next.Next {
				if next.StartOffset != unset {
					limit = next.StartOffset
					break
				}
			}
			c.StartOffset, c.EndOffset = m.gapSpan(c.Kind, cursor, limit)
		}
		cursor = c.EndOffset
		m.fillGaps(c)
	}
}

// gapSpan locates the non-blank lines in [cursor, limit). A thematic
// break is a single line by grammar; any other kind takes the whole
// run of consecutive non-blank lines.
func (m *mapper) gapSpan(kind doctree.NodeKind, cursor, limit int) (int, int) {
	off := cursor
	for off < limit && m.isBlankLine(off) {
		off = m.lineEnd(off)
	}
	if off >= limit {
		return cursor, cursor
	}

	start := m.lineStart(off)
	end := m.lineEnd(off)
	if kind != doctree.NodeThematicBreak {
		for end < limit && !m.isBlankLine(end) {
			end = m.lineEnd(end)
		}
	}
	if end > limit {
		end = limit
	}
	return start, end
}

func (m *mapper) assignPoints(n *doctree.Node) {
	n.StartPoint = m.pointAt(n.StartOffset)
	n.EndPoint = m.pointAt(n.EndOffset)
	for c := n.FirstChild; c != nil; c = c.Next {
		m.assignPoints(c)
	}
}

// extendFences widens a fenced code block span to include its fence
// lines. Goldmark line segments cover only the code content. Indented
// code blocks have no fences and pass through unchanged.
func (m *mapper) extendFences(start, end int) (int, int) {
	if start > 0 && isFenceLine(m.lineText(start-1)) {
		start = m.lineStart(start - 1)
	}
	if end < len(m.content) && isFenceLine(m.lineText(end)) {
		end = m.lineEnd(end)
	}
	return start, end
}

// isFenceLine reports whether a line opens or closes a code fence: up to
// three spaces of indentation followed by at least three backticks or
// tildes.
func isFenceLine(line []byte) bool {
	i := 0
	for i < len(line) && i < 3 && line[i] == ' ' {
		i++
	}
	if i >= len(line) || (line[i] != '`' && line[i] != '~') {
		return false
	}
	marker := line[i]
	n := 0
	for i < len(line) && line[i] == marker {
		i++
		n++
	}
	return n >= 3
}

// snapToLines widens [start, end) to whole lines, trailing newline
// included.
func (m *mapper) snapToLines(start, end int) (int, int) {
	s := m.lineStart(start)
	if end <= start {
		return s, s
	}
	return s, m.lineEnd(end - 1)
}

// lineIndex returns the index of the line containing off.
func (m *mapper) lineIndex(off int) int {
	return sort.SearchInts(m.starts, off+1) - 1
}

func (m *mapper) lineStart(off int) int {
	return m.starts[m.lineIndex(off)]
}

// lineEnd returns the offset one past the line containing off, newline
// included, clamped to the content length.
func (m *mapper) lineEnd(off int) int {
	idx := m.lineIndex(off) + 1
	if idx < len(m.starts) {
		return m.starts[idx]
	}
	return len(m.content)
}

// lineText returns the line containing off without its newline.
func (m *mapper) lineText(off int) []byte {
	return bytes.TrimRight(m.content[m.lineStart(off):m.lineEnd(off)], "\n")
}

func (m *mapper) isBlankLine(off int) bool {
	for _, b := range m.lineText(off) {
		if b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}

func (m *mapper) pointAt(off int) srctext.Point {
	idx := m.lineIndex(off)
	return srctext.Point{Row: idx, Column: off - m.starts[idx]}
}

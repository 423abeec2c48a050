// Package doctree defines the document syntax tree shared by all fmtlint
// parsers. Nodes carry byte spans over the source, so violations can be
// anchored to the smallest node enclosing an arbitrary byte range.
package doctree

import "github.com/yaklabco/fmtlint/pkg/srctext"

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds. Lexical parsing produces Document, Group, and Span nodes;
// the Markdown parser produces the block-level kinds.
const (
	NodeDocument NodeKind = iota

	// Lexical structure.
	NodeGroup
	NodeSpan

	// Markdown block structure.
	NodeHeading
	NodeParagraph
	NodeCodeBlock
	NodeList
	NodeListItem
	NodeBlockquote
	NodeThematicBreak
	NodeHTMLBlock

	// Fallback for unrecognized content.
	NodeRaw
)

var kindNames = map[NodeKind]string{
	NodeDocument:      "Document",
	NodeGroup:         "Group",
	NodeSpan:          "Span",
	NodeHeading:       "Heading",
	NodeParagraph:     "Paragraph",
	NodeCodeBlock:     "CodeBlock",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeRaw:           "Raw",
}

// String returns the kind name.
func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node represents a single node in the document tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Byte span in the source. StartOffset inclusive, EndOffset exclusive.
	StartOffset int
	EndOffset   int

	// Row/column span corresponding to the byte span.
	StartPoint srctext.Point
	EndPoint   srctext.Point

	// Delim is the opening delimiter for Group nodes, zero otherwise.
	Delim byte
}

// Range returns the node's byte and point span.
func (n *Node) Range() srctext.Range {
	return srctext.Range{
		StartOffset: n.StartOffset,
		EndOffset:   n.EndOffset,
		StartPoint:  n.StartPoint,
		EndPoint:    n.EndPoint,
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// AppendChild links child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	child.Prev = n.LastChild
	child.Next = nil
	if n.LastChild != nil {
		n.LastChild.Next = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
}

// covers returns true if the node's span encloses [start, end]. A
// zero-width interval on the span boundary counts as covered, so
// insertion points at a node edge still anchor to that node.
func (n *Node) covers(start, end int) bool {
	return n.StartOffset <= start && end <= n.EndOffset
}

// DescendantForByteRange returns the smallest node in the subtree rooted
// at n whose span covers the byte interval [start, end]. Returns nil if
// n itself does not cover the interval. When sibling spans touch, the
// leftmost covering child wins.
func (n *Node) DescendantForByteRange(start, end int) *Node {
	if n == nil || !n.covers(start, end) {
		return nil
	}

	current := n
descend:
	for {
		for child := current.FirstChild; child != nil; child = child.Next {
			if child.covers(start, end) {
				current = child
				continue descend
			}
		}
		return current
	}
}

// Tree wraps the root node of a parsed document.
type Tree struct {
	Root *Node
}

// DescendantForByteRange returns the smallest node covering [start, end],
// or nil for an empty tree.
func (t *Tree) DescendantForByteRange(start, end int) *Node {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.Root.DescendantForByteRange(start, end)
}

package lexical

import (
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/fmtlint/pkg/doctree"
	"github.com/yaklabco/fmtlint/pkg/srctext"
)

func parse(t *testing.T, content string) *doctree.Tree {
	t.Helper()

	tree, err := New().Parse(context.Background(), "test.rs", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tree == nil || tree.Root == nil {
		t.Fatal("expected non-nil tree with root")
	}
	return tree
}

func TestParser_Parse_Basic(t *testing.T) {
	tree := parse(t, "fn main() { body(); }\n")

	root := tree.Root
	if root.Kind != doctree.NodeDocument {
		t.Errorf("Root.Kind = %v, want NodeDocument", root.Kind)
	}
	if root.StartOffset != 0 || root.EndOffset != 22 {
		t.Errorf("root span = [%d, %d), want [0, 22)", root.StartOffset, root.EndOffset)
	}
	if got := root.ChildCount(); got != 2 {
		t.Fatalf("ChildCount() = %d, want 2", got)
	}

	args := root.FirstChild
	if args.Kind != doctree.NodeGroup || args.Delim != '(' {
		t.Errorf("first child = %v delim %q, want Group delim '('", args.Kind, args.Delim)
	}
	if args.StartOffset != 7 || args.EndOffset != 9 {
		t.Errorf("args span = [%d, %d), want [7, 9)", args.StartOffset, args.EndOffset)
	}

	block := root.LastChild
	if block.Kind != doctree.NodeGroup || block.Delim != '{' {
		t.Errorf("last child = %v delim %q, want Group delim '{'", block.Kind, block.Delim)
	}
	if block.StartOffset != 10 || block.EndOffset != 21 {
		t.Errorf("block span = [%d, %d), want [10, 21)", block.StartOffset, block.EndOffset)
	}

	call := block.FirstChild
	if call == nil || call.StartOffset != 16 || call.EndOffset != 18 {
		t.Fatalf("expected nested call group at [16, 18), got %+v", call)
	}
	if call.Parent != block {
		t.Error("nested group should have the enclosing group as parent")
	}
}

func TestParser_Parse_Shielding(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantKinds []doctree.NodeKind
		wantSpans [][2]int
	}{
		{
			name:      "brackets inside string",
			content:   "s := \"a{b(c\"\n",
			wantKinds: []doctree.NodeKind{doctree.NodeSpan},
			wantSpans: [][2]int{{5, 12}},
		},
		{
			name:      "brackets inside line comment",
			content:   "x // don't { (\ny()\n",
			wantKinds: []doctree.NodeKind{doctree.NodeSpan, doctree.NodeGroup},
			wantSpans: [][2]int{{2, 14}, {16, 18}},
		},
		{
			name:      "nested block comment",
			content:   "/* a /* b */ c */ (x)\n",
			wantKinds: []doctree.NodeKind{doctree.NodeSpan, doctree.NodeGroup},
			wantSpans: [][2]int{{0, 17}, {18, 21}},
		},
		{
			name:      "char literal yes, lifetime no",
			content:   "let c = 'a'; &'x str\n",
			wantKinds: []doctree.NodeKind{doctree.NodeSpan},
			wantSpans: [][2]int{{8, 11}},
		},
		{
			name:      "escaped char literal",
			content:   "'\\n'",
			wantKinds: []doctree.NodeKind{doctree.NodeSpan},
			wantSpans: [][2]int{{0, 4}},
		},
		{
			name:      "raw backtick literal spans lines",
			content:   "a `x\n{` b\n",
			wantKinds: []doctree.NodeKind{doctree.NodeSpan},
			wantSpans: [][2]int{{2, 7}},
		},
		{
			name:      "escaped quote stays inside string",
			content:   "\"a\\\"b\" (c)\n",
			wantKinds: []doctree.NodeKind{doctree.NodeSpan, doctree.NodeGroup},
			wantSpans: [][2]int{{0, 6}, {7, 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.content)

			children := tree.Root.Children()
			if len(children) != len(tt.wantKinds) {
				t.Fatalf("root has %d children, want %d", len(children), len(tt.wantKinds))
			}
			for i, child := range children {
				if child.Kind != tt.wantKinds[i] {
					t.Errorf("child %d kind = %v, want %v", i, child.Kind, tt.wantKinds[i])
				}
				if child.StartOffset != tt.wantSpans[i][0] || child.EndOffset != tt.wantSpans[i][1] {
					t.Errorf("child %d span = [%d, %d), want [%d, %d)",
						i, child.StartOffset, child.EndOffset, tt.wantSpans[i][0], tt.wantSpans[i][1])
				}
			}
		})
	}
}

func TestParser_Parse_UnterminatedStringRecovers(t *testing.T) {
	// The stray quote ends at the newline, so the group on the next line
	// is still recognized.
	tree := parse(t, "\"abc\nx(y)\n")

	children := tree.Root.Children()
	if len(children) != 2 {
		t.Fatalf("root has %d children, want 2", len(children))
	}
	if children[0].Kind != doctree.NodeSpan || children[0].EndOffset != 4 {
		t.Errorf("string span = %v [%d, %d), want Span ending at 4",
			children[0].Kind, children[0].StartOffset, children[0].EndOffset)
	}
	if children[1].Kind != doctree.NodeGroup || children[1].StartOffset != 6 || children[1].EndOffset != 9 {
		t.Errorf("group span = [%d, %d), want [6, 9)", children[1].StartOffset, children[1].EndOffset)
	}
}

func TestParser_Parse_UnclosedGroupsCloseAtEOF(t *testing.T) {
	content := "fn f() {\n  g(\n"
	tree := parse(t, content)

	children := tree.Root.Children()
	if len(children) != 2 {
		t.Fatalf("root has %d children, want 2", len(children))
	}

	block := children[1]
	if block.Delim != '{' || block.StartOffset != 7 || block.EndOffset != len(content) {
		t.Errorf("block span = [%d, %d), want [7, %d)", block.StartOffset, block.EndOffset, len(content))
	}

	call := block.FirstChild
	if call == nil || call.Delim != '(' || call.EndOffset != len(content) {
		t.Fatalf("expected unclosed call group ending at %d, got %+v", len(content), call)
	}
}

func TestParser_Parse_MismatchedCloserIgnored(t *testing.T) {
	tree := parse(t, "(a]b)\n")

	children := tree.Root.Children()
	if len(children) != 1 {
		t.Fatalf("root has %d children, want 1", len(children))
	}
	if children[0].StartOffset != 0 || children[0].EndOffset != 5 {
		t.Errorf("group span = [%d, %d), want [0, 5)", children[0].StartOffset, children[0].EndOffset)
	}
}

func TestParser_Parse_Points(t *testing.T) {
	tree := parse(t, "a\n(b\nc)\n")

	group := tree.Root.FirstChild
	if group == nil {
		t.Fatal("expected a group child")
	}
	if want := (srctext.Point{Row: 1, Column: 0}); group.StartPoint != want {
		t.Errorf("StartPoint = %+v, want %+v", group.StartPoint, want)
	}
	if want := (srctext.Point{Row: 2, Column: 2}); group.EndPoint != want {
		t.Errorf("EndPoint = %+v, want %+v", group.EndPoint, want)
	}
	if want := (srctext.Point{Row: 3, Column: 0}); tree.Root.EndPoint != want {
		t.Errorf("root EndPoint = %+v, want %+v", tree.Root.EndPoint, want)
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	tree := parse(t, "")

	if tree.Root.StartOffset != 0 || tree.Root.EndOffset != 0 {
		t.Errorf("root span = [%d, %d), want [0, 0)", tree.Root.StartOffset, tree.Root.EndOffset)
	}
	if tree.Root.HasChildren() {
		t.Error("empty document should have no children")
	}
}

func TestParser_Parse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Parse(ctx, "test.rs", []byte("fn main() {}\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

func TestParser_Parse_DescendantAnchoring(t *testing.T) {
	tree := parse(t, "fn main() { body(); }\n")

	tests := []struct {
		name       string
		start, end int
		wantStart  int
		wantEnd    int
	}{
		{"inside body braces", 12, 15, 10, 21},
		{"exactly the call parens", 16, 18, 16, 18},
		{"insertion point in call", 17, 17, 16, 18},
		{"spans both groups", 8, 12, 0, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := tree.DescendantForByteRange(tt.start, tt.end)
			if node == nil {
				t.Fatal("expected a covering node")
			}
			if node.StartOffset != tt.wantStart || node.EndOffset != tt.wantEnd {
				t.Errorf("covering span = [%d, %d), want [%d, %d)",
					node.StartOffset, node.EndOffset, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

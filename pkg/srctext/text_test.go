package srctext_test

import (
	"io"
	"reflect"
	"testing"

	"github.com/yaklabco/fmtlint/pkg/srctext"
)

func TestNewlineOffsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{"empty", "", nil},
		{"no newlines", "abc", nil},
		{"single newline", "ab\n", []int{2}},
		{"several", "a\nbb\n\nc", []int{1, 4, 5}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := srctext.NewlineOffsets([]byte(testCase.content))
			if !reflect.DeepEqual(got, testCase.want) {
				t.Errorf("NewlineOffsets(%q) = %v, want %v", testCase.content, got, testCase.want)
			}
		})
	}
}

func TestTextDispatch(t *testing.T) {
	t.Parallel()

	content := []byte("hello\nworld\n")

	fromBytes := srctext.FromBytes(content)
	if fromBytes.IsRope() {
		t.Error("FromBytes text reports IsRope")
	}
	if fromBytes.Rope() != nil {
		t.Error("FromBytes text has non-nil rope")
	}
	if got := string(fromBytes.Bytes()); got != string(content) {
		t.Errorf("Bytes() = %q, want %q", got, content)
	}

	fromRope := srctext.FromRope(srctext.NewRope(content))
	if !fromRope.IsRope() {
		t.Error("FromRope text does not report IsRope")
	}
	if got := string(fromRope.Bytes()); got != string(content) {
		t.Errorf("Bytes() = %q, want %q", got, content)
	}

	var zero srctext.Text
	if zero.IsRope() || zero.Len() != 0 {
		t.Errorf("zero Text = rope %v len %d, want bytes of length 0", zero.IsRope(), zero.Len())
	}
}

func TestTextReader(t *testing.T) {
	t.Parallel()

	content := []byte("stream me\n")
	for _, text := range []srctext.Text{
		srctext.FromBytes(content),
		srctext.FromRope(srctext.NewRope(content)),
	} {
		data, err := io.ReadAll(text.Reader())
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(data) != string(content) {
			t.Errorf("Reader() produced %q, want %q", data, content)
		}
	}
}

func TestTextRowAt(t *testing.T) {
	t.Parallel()

	content := []byte("ab\ncd\nef\n")

	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start", 0, 0},
		{"on first newline", 2, 0},
		{"second line", 3, 1},
		{"third line", 7, 2},
		{"past end", 50, 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fromBytes := srctext.FromBytes(content)
			fromRope := srctext.FromRope(srctext.NewRope(content))

			if got := fromBytes.RowAt(testCase.offset); got != testCase.want {
				t.Errorf("bytes RowAt(%d) = %d, want %d", testCase.offset, got, testCase.want)
			}
			if got := fromRope.RowAt(testCase.offset); got != testCase.want {
				t.Errorf("rope RowAt(%d) = %d, want %d", testCase.offset, got, testCase.want)
			}
		})
	}
}

func TestTextLine(t *testing.T) {
	t.Parallel()

	content := []byte("fn main() {\r\n    a();\n}\n")

	tests := []struct {
		name string
		line int
		want string
		nil_ bool
	}{
		{"first line strips CRLF", 1, "fn main() {", false},
		{"middle line strips LF", 2, "    a();", false},
		{"last line", 3, "}", false},
		{"trailing empty line", 4, "", false},
		{"past end", 5, "", true},
		{"zero", 0, "", true},
		{"negative", -1, "", true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fromBytes := srctext.FromBytes(content)
			fromRope := srctext.FromRope(srctext.NewRope(content))

			for label, text := range map[string]srctext.Text{"bytes": fromBytes, "rope": fromRope} {
				got := text.Line(testCase.line)
				if testCase.nil_ {
					if got != nil {
						t.Errorf("%s Line(%d) = %q, want nil", label, testCase.line, got)
					}
					continue
				}
				if got == nil || string(got) != testCase.want {
					t.Errorf("%s Line(%d) = %q, want %q", label, testCase.line, got, testCase.want)
				}
			}
		})
	}
}

func TestTextLine_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	for label, text := range map[string]srctext.Text{
		"bytes": srctext.FromBytes([]byte("only line")),
		"rope":  srctext.FromRope(srctext.NewRope([]byte("only line"))),
	} {
		if got := string(text.Line(1)); got != "only line" {
			t.Errorf("%s Line(1) = %q, want %q", label, got, "only line")
		}
		if got := text.Line(2); got != nil {
			t.Errorf("%s Line(2) = %q, want nil", label, got)
		}
	}
}

func TestRangeCovers(t *testing.T) {
	t.Parallel()

	r := srctext.Range{StartOffset: 4, EndOffset: 10}

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"inner", 5, 8, true},
		{"exact", 4, 10, true},
		{"zero width at start", 4, 4, true},
		{"zero width at end", 10, 10, true},
		{"overlap left", 2, 6, false},
		{"overlap right", 8, 12, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Covers(testCase.start, testCase.end); got != testCase.want {
				t.Errorf("Covers(%d, %d) = %v, want %v", testCase.start, testCase.end, got, testCase.want)
			}
		})
	}
}

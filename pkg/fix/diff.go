package fix

import (
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind DiffLineKind

	// Content is the line content (without the diff prefix).
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if len(original) == 0 && len(modified) == 0 {
		return nil
	}

	ops := diffOps(splitLines(original), splitLines(modified))
	hunks := buildHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			}
		}
	}

	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines, removing the trailing newline if present.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// diffOp represents a single diff operation.
type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps computes the line-level diff between orig and mod as a flat
// operation sequence, using a suffix LCS table to choose between remove
// and add at each divergence.
func diffOps(orig, mod []string) []diffOp {
	origLen, modLen := len(orig), len(mod)

	// lcs[i][j] holds the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, origLen+1)
	for idx := range lcs {
		lcs[idx] = make([]int, modLen+1)
	}
	for i := origLen - 1; i >= 0; i-- {
		for j := modLen - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]diffOp, 0, max(origLen, modLen))
	i, j := 0, 0
	for i < origLen && j < modLen {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, diffOp{kind: DiffLineContext, content: orig[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, diffOp{kind: DiffLineRemove, content: orig[i]})
			i++
		default:
			ops = append(ops, diffOp{kind: DiffLineAdd, content: mod[j]})
			j++
		}
	}
	for ; i < origLen; i++ {
		ops = append(ops, diffOp{kind: DiffLineRemove, content: orig[i]})
	}
	for ; j < modLen; j++ {
		ops = append(ops, diffOp{kind: DiffLineAdd, content: mod[j]})
	}

	return ops
}

// buildHunks groups change operations into hunks, merging changes whose
// context windows touch.
func buildHunks(ops []diffOp) []DiffHunk {
	var changes []int
	for idx, op := range ops {
		if op.kind != DiffLineContext {
			changes = append(changes, idx)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []DiffHunk
	groupStart := changes[0]
	prev := changes[0]
	for _, idx := range changes[1:] {
		if idx-prev-1 > contextLines*2 {
			hunks = append(hunks, buildHunk(ops, groupStart, prev))
			groupStart = idx
		}
		prev = idx
	}
	hunks = append(hunks, buildHunk(ops, groupStart, prev))

	return hunks
}

// buildHunk builds one hunk covering ops[first..last] (both change
// indices, inclusive), expanded by surrounding context lines.
func buildHunk(ops []diffOp, first, last int) DiffHunk {
	start := max(0, first-contextLines)
	end := min(len(ops), last+1+contextLines)

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

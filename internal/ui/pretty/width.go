package pretty

import (
	"io"

	"golang.org/x/term"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TerminalWidth returns the column width of the terminal behind writer,
// or a default when the writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// TruncateLine shortens a string to maxLen, replacing the tail with "..."
// when it does not fit. A maxLen of zero or less leaves the string alone.
func TruncateLine(str string, maxLen int) string {
	if maxLen <= 0 || len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

package lint

import (
	"context"

	"github.com/yaklabco/fmtlint/pkg/doctree"
)

// Parser parses file content into a structural tree.
//
// The lint package defines this interface to follow the gobible principle
// of defining interfaces in the consumer package. Implementations (e.g.,
// parser/lexical, parser/markdown) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines, if documented as such,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw bytes into a structural tree.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout propagation.
	//   - path: logical file path (for routing; must not be used for I/O).
	//   - content: raw bytes (must not be mutated by the implementation).
	//
	// Returns:
	//   - On success: a tree whose root covers [0, len(content)).
	//   - On error: nil and a descriptive error; no partial tree is returned.
	Parse(ctx context.Context, path string, content []byte) (*doctree.Tree, error)
}

// Detector maps a file to a language name (e.g., "rust").
// Implementations return the empty string when no language is recognized.
type Detector interface {
	Detect(path string, content []byte) string
}

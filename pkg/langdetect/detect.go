// Package langdetect maps checked files to language names. Detection is
// path-first: well-known filenames and unambiguous extensions decide
// most files, and content heuristics cover extensionless scripts.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for pattern-detected languages.
const (
	langGo     = "go"
	langPython = "python"
	langJSON   = "json"
	langRust   = "rust"
	langBash   = "bash"
)

// Detector resolves the language of a file. The zero value is ready to
// use and safe for concurrent use.
type Detector struct{}

// New returns a Detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the lowercase language name for a file, or the empty
// string when nothing is recognized with confidence.
func (d *Detector) Detect(path string, content []byte) string {
	if path != "" {
		if lang, ok := enry.GetLanguageByFilename(filepath.Base(path)); ok {
			return normalize(lang)
		}
		if lang := byExtension(path, content); lang != "" {
			return normalize(lang)
		}
	}
	return detectByContent(content)
}

// byExtension resolves the extension's language. Linguist maps some
// extensions to several languages (.rs is both Rust and RenderScript),
// so ties are broken by enry's content heuristics.
func byExtension(path string, content []byte) string {
	candidates := enry.GetLanguagesByExtension(path, nil, nil)
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}

	refined := enry.GetLanguagesByContent(filepath.Base(path), content, candidates)
	if len(refined) == 1 {
		return refined[0]
	}
	return ""
}

func detectByContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	// A shebang names the interpreter outright.
	if lang, ok := enry.GetLanguageByShebang(content); ok {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	candidates := []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript",
		"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
		"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
	}
	if lang, ok := enry.GetLanguageByClassifier(content, candidates); ok && lang != "" {
		return normalize(lang)
	}

	return ""
}

// detectByPattern recognizes highly indicative constructs before falling
// back to the statistical classifier. Ordered by specificity.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	text := string(content)

	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	if strings.Contains(text, "fn main()") ||
		strings.Contains(text, "println!") ||
		strings.Contains(text, "let mut ") {
		return langRust
	}
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return langPython
	}
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}

	return ""
}

// normalize converts enry language names to the lowercase form used in
// profile language lists.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}

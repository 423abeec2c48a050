package runner

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledGlob is one pattern plus the lenient variants that make
// include and exclude lists behave as users expect: "vendor/**" also
// matches the vendor directory itself, "**/build" matches build at the
// root, and a pattern without separators matches by final path element
// at any depth.
type compiledGlob struct {
	matcher   glob.Glob
	rootAlt   glob.Glob // pattern with a leading "**/" stripped
	baseOnly  bool      // no separator in the pattern
	dirPrefix string    // pattern minus a trailing "/**"
}

// globSet matches slash-separated paths relative to the working
// directory against a set of compiled patterns.
type globSet struct {
	globs []compiledGlob
}

// compileGlobs compiles patterns with '/' as the separator, so a single
// '*' never crosses directory boundaries but '**' does. Patterns that
// fail to compile are dropped.
func compileGlobs(patterns []string) globSet {
	var s globSet
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}

		cg := compiledGlob{
			matcher:  g,
			baseOnly: !strings.Contains(pattern, "/"),
		}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			if alt, err := glob.Compile(rest, '/'); err == nil {
				cg.rootAlt = alt
			}
		}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && prefix != "" {
			cg.dirPrefix = prefix
		}
		s.globs = append(s.globs, cg)
	}
	return s
}

func (s globSet) empty() bool { return len(s.globs) == 0 }

// match reports whether relPath matches any pattern in the set.
func (s globSet) match(relPath string) bool {
	p := filepath.ToSlash(relPath)
	base := path.Base(p)
	for _, cg := range s.globs {
		if cg.matcher.Match(p) {
			return true
		}
		if cg.rootAlt != nil && cg.rootAlt.Match(p) {
			return true
		}
		if cg.baseOnly && base != p && cg.matcher.Match(base) {
			return true
		}
		if cg.dirPrefix != "" && p == cg.dirPrefix {
			return true
		}
	}
	return false
}

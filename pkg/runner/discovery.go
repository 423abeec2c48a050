package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// discovery carries the resolved matching state for one Discover call.
type discovery struct {
	workDir    string
	extensions map[string]struct{}
	include    globSet
	exclude    globSet
	follow     bool

	seen    map[string]struct{} // absolute file paths already collected
	visited map[string]struct{} // resolved directory roots, guards symlink cycles
	files   []string
}

// Discover returns the candidate files for opts as absolute paths,
// deduplicated and sorted.
//
// Files named explicitly in opts.Paths are always included, regardless
// of extension or exclude patterns. Directories are walked recursively:
// hidden files and directories are skipped, excluded directories are
// pruned, and files must carry a candidate extension and pass the
// include and exclude patterns. Unreadable directories are tolerated; a
// missing explicit path is an error.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := make(map[string]struct{})
	for _, ext := range opts.effectiveExtensions() {
		extensions[ext] = struct{}{}
	}

	d := &discovery{
		workDir:    workDir,
		extensions: extensions,
		include:    compileGlobs(opts.IncludeGlobs),
		exclude:    compileGlobs(opts.ExcludeGlobs),
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}

	for _, p := range opts.effectivePaths() {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, p)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", p, err)
		}
		if info.IsDir() {
			if err := d.walk(ctx, abs); err != nil {
				return nil, err
			}
			continue
		}
		// An explicit file argument expresses intent; take it as-is.
		d.addFile(abs)
	}

	sort.Strings(d.files)
	return d.files, nil
}

// walk traverses the tree rooted at root, collecting candidate files.
// Each resolved root is visited at most once, so symlinked directories
// cannot cause cycles.
func (d *discovery) walk(ctx context.Context, root string) error {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := d.visited[resolved]; ok {
			return nil
		}
		d.visited[resolved] = struct{}{}
	}

	return filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := d.relative(p)
		if entry.IsDir() {
			if p != root && isHiddenName(entry.Name()) {
				return fs.SkipDir
			}
			if p != root && d.exclude.match(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.followLink(ctx, p, rel)
		}

		d.consider(p, rel)
		return nil
	})
}

// followLink resolves a symlink entry. Link targets that are regular
// files go through the normal filters under the link's own path; target
// directories are walked in place, and only when FollowSymlinks is set.
func (d *discovery) followLink(ctx context.Context, p, rel string) error {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		return nil // broken link
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		d.consider(p, rel)
		return nil
	}
	if !d.follow {
		return nil
	}
	if isHiddenName(filepath.Base(p)) || d.exclude.match(rel) {
		return nil
	}
	return d.walk(ctx, target)
}

// consider applies the hidden-name, extension, and pattern filters to a
// regular file.
func (d *discovery) consider(p, rel string) {
	if isHiddenName(filepath.Base(p)) {
		return
	}
	ext := strings.ToLower(filepath.Ext(p))
	if _, ok := d.extensions[ext]; !ok {
		return
	}
	if d.exclude.match(rel) {
		return
	}
	if !d.include.empty() && !d.include.match(rel) {
		return
	}
	d.addFile(p)
}

func (d *discovery) addFile(p string) {
	if _, ok := d.seen[p]; ok {
		return
	}
	d.seen[p] = struct{}{}
	d.files = append(d.files, p)
}

// relative rebases p onto the working directory for pattern matching.
// Paths outside the working directory are matched as given.
func (d *discovery) relative(p string) string {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

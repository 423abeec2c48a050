// Package runner provides multi-file orchestration: discovery of
// candidate files and concurrent processing through the check pipeline.
package runner

import (
	"sort"
	"strings"

	"github.com/yaklabco/fmtlint/pkg/config"
)

// Options controls discovery and concurrency for a run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// Empty means the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths
	// and for pattern matching. Empty means the process working
	// directory.
	WorkingDir string

	// Extensions overrides which file extensions are candidates
	// (lowercase, with leading dot). Empty means the union of
	// extensions claimed by enabled profiles.
	Extensions []string

	// IncludeGlobs narrows discovery to matching paths when non-empty,
	// relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories. These merge
	// ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the fallback extension set used when
// neither the options nor any profile claims one.
func DefaultExtensions() []string {
	return []string{".rs"}
}

// effectiveExtensions resolves the candidate extension set, lowercased
// and deterministically ordered.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		exts := make([]string, len(o.Extensions))
		for i, e := range o.Extensions {
			exts[i] = strings.ToLower(e)
		}
		return exts
	}

	seen := make(map[string]struct{})
	var exts []string
	if o.Config != nil {
		for _, profile := range o.Config.Profiles {
			if profile.Enabled != nil && !*profile.Enabled {
				continue
			}
			for _, ext := range profile.Extensions {
				ext = strings.ToLower(ext)
				if _, ok := seen[ext]; ok {
					continue
				}
				seen[ext] = struct{}{}
				exts = append(exts, ext)
			}
		}
	}
	if len(exts) == 0 {
		return DefaultExtensions()
	}
	sort.Strings(exts)
	return exts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

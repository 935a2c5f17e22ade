// Package cgroup models a cgroup v2 unified hierarchy and collects
// per-group resource counters from it.
package cgroup

import (
	"path/filepath"
	"strings"
)

// Path identifies a group within the monitored hierarchy. Paths are
// normalized: slash-delimited, always starting with "/", never ending with
// one (except the root itself). Ancestry is derived purely from string
// structure, never from stored references.
type Path string

// Root is the path of the hierarchy root.
const Root Path = "/"

// NormalizePath converts an arbitrary slash-delimited string into a Path.
// Empty segments are dropped; "" and "/" both normalize to the root.
func NormalizePath(s string) Path {
	parts := strings.Split(s, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return Root
	}
	return Path("/" + strings.Join(kept, "/"))
}

// RelativePath converts an absolute filesystem path under rootDir into a
// group Path. The second return is false when full is not inside rootDir.
func RelativePath(rootDir, full string) (Path, bool) {
	rootDir = filepath.Clean(rootDir)
	full = filepath.Clean(full)
	if full == rootDir {
		return Root, true
	}
	if !strings.HasPrefix(full, rootDir+"/") {
		return "", false
	}
	return NormalizePath(strings.TrimPrefix(full, rootDir)), true
}

// IsRoot reports whether p is the hierarchy root.
func (p Path) IsRoot() bool {
	return p == Root
}

// Base returns the final path segment, used as the display name.
func (p Path) Base() string {
	if p.IsRoot() {
		return "/"
	}
	i := strings.LastIndexByte(string(p), '/')
	return string(p[i+1:])
}

// Parent returns the parent path. The second return is false for the root.
func (p Path) Parent() (Path, bool) {
	if p.IsRoot() {
		return "", false
	}
	i := strings.LastIndexByte(string(p), '/')
	if i == 0 {
		return Root, true
	}
	return p[:i], true
}

// Depth returns the number of segments below the root: 0 for "/",
// 1 for "/a", 2 for "/a/b".
func (p Path) Depth() int {
	if p.IsRoot() {
		return 0
	}
	return strings.Count(string(p), "/")
}

// HasAncestor reports whether anc is a strict ancestor of p, honoring
// segment boundaries ("/ab" is not a descendant of "/a").
func (p Path) HasAncestor(anc Path) bool {
	if p == anc {
		return false
	}
	if anc.IsRoot() {
		return true
	}
	return strings.HasPrefix(string(p), string(anc)+"/")
}

// Join appends a child segment to p.
func (p Path) Join(segment string) Path {
	if p.IsRoot() {
		return Path("/" + segment)
	}
	return Path(string(p) + "/" + segment)
}

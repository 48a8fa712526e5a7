package models

import "strings"

// TreeListing is the full recursive path listing of a repository's default
// branch. A repository whose tree could not be resolved (empty repo, 404) is
// represented by an empty listing.
type TreeListing struct {
	paths []string
	exact map[string]struct{}
}

func NewTreeListing(paths []string) *TreeListing {
	t := &TreeListing{
		paths: paths,
		exact: make(map[string]struct{}, len(paths)),
	}
	for _, p := range paths {
		t.exact[p] = struct{}{}
	}
	return t
}

// Paths returns the raw path listing.
func (t *TreeListing) Paths() []string {
	if t == nil {
		return nil
	}
	return t.paths
}

// Len returns the number of tree entries.
func (t *TreeListing) Len() int {
	if t == nil {
		return 0
	}
	return len(t.paths)
}

// Has reports exact path membership.
func (t *TreeListing) Has(path string) bool {
	if t == nil {
		return false
	}
	_, ok := t.exact[path]
	return ok
}

// HasDir reports whether any tree path sits under the given directory.
// The argument may be given with or without a trailing slash.
func (t *TreeListing) HasDir(dir string) bool {
	if t == nil {
		return false
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	for _, p := range t.paths {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// HasAny checks a catalog of path entries: entries ending in "/" are
// directory-prefix matches, all others are exact path membership.
func (t *TreeListing) HasAny(entries []string) bool {
	if t == nil {
		return false
	}
	for _, e := range entries {
		if strings.HasSuffix(e, "/") {
			if t.HasDir(e) {
				return true
			}
			continue
		}
		if t.Has(e) {
			return true
		}
	}
	return false
}

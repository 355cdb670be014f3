package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher decides which corpus files are left out of reference scanning.
//
// A directory is excluded when one of the excluded directory paths occurs
// inside it, compared case-insensitively. This is plain containment: an
// excluded "Items" path also excludes a sibling named "Items2".
type Matcher struct {
	dirs     []string
	patterns []string
}

// NewMatcher builds a matcher from excluded directory paths and optional
// user glob patterns. Patterns are matched against slash-separated paths
// relative to the scanned directory and support "**".
func NewMatcher(excludedDirs []string, patterns []string) *Matcher {
	m := &Matcher{
		dirs:     make([]string, 0, len(excludedDirs)),
		patterns: make([]string, 0, len(patterns)),
	}
	for _, dir := range excludedDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		m.dirs = append(m.dirs, normalizeDir(dir))
	}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			continue
		}
		m.patterns = append(m.patterns, strings.TrimPrefix(filepath.ToSlash(pattern), "./"))
	}
	return m
}

// ExcludesDir reports whether files directly inside dir are excluded.
func (m *Matcher) ExcludesDir(dir string) bool {
	if m == nil {
		return false
	}
	dir = normalizeDir(dir)
	for _, excluded := range m.dirs {
		if strings.Contains(dir, excluded) {
			return true
		}
	}
	return false
}

// ExcludesFile reports whether relPath matches one of the user patterns.
func (m *Matcher) ExcludesFile(relPath string) bool {
	if m == nil {
		return false
	}
	relPath = strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	for _, pattern := range m.patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// ShouldIgnore combines the directory rule for the file's directory and the
// pattern rule for its relative path.
func (m *Matcher) ShouldIgnore(dir, relPath string) bool {
	return m.ExcludesDir(dir) || m.ExcludesFile(relPath)
}

func normalizeDir(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	return strings.ToLower(path)
}

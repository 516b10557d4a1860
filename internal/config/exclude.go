package config

import (
	"path/filepath"
	"strings"
)

// Excluded reports whether rel (slash-separated, relative to the walk root)
// matches one of the [lint].exclude patterns. A pattern matches when it
// equals any path segment prefix or glob-matches the base name.
func (c Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." {
		return false
	}
	base := filepath.Base(rel)
	for _, pattern := range c.Lint.Exclude {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
		if pattern == "" {
			continue
		}
		if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

package utils

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/yargevad/filepathx"
)

// ExpandDocPaths resolves the configured documentation path patterns against
// a repository root. Patterns ending in a separator are treated as directory
// prefixes and matched recursively. Results are deduplicated, relative to
// root, and sorted.
func ExpandDocPaths(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasSuffix(pattern, "/") {
			pattern += "**"
		}
		matches, err := filepathx.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			rel, err := filepath.Rel(root, match)
			if err != nil {
				continue
			}
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out, nil
}

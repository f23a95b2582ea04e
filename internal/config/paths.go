package config

import (
	"path/filepath"
	"sort"
)

// SortedGlobPaths expands each pattern (tilde-aware, made absolute) via
// filepath.Glob and returns the union sorted lexically. Patterns that match
// nothing contribute nothing; they are not an error.
func SortedGlobPaths(patterns ...string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		expanded, err := ExpandPath(pattern)
		if err != nil {
			return nil, err
		}
		matches, err := filepath.Glob(expanded)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

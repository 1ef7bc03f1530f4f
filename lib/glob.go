package lib

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchAny returns true if slash path name matches any of patterns.
// The pattern without slash matches the base name as well,
// so '*.tmp' excludes tmp files in every directory.
func MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if strings.Contains(pattern, "/") {
			continue
		}
		if ok, _ := doublestar.Match(pattern, path.Base(name)); ok {
			return true
		}
	}
	return false
}

func IsValidGlob(pattern string) bool {
	return pattern != "" && doublestar.ValidatePattern(pattern)
}

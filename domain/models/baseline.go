package models

import (
	"slices"

	"github.com/cloudcopper/verity/lib"
)

// Baseline maps slash relative path to expected lowercase hex digest.
// Once loaded it is never modified, the methods return copies.
type Baseline map[string]string

// Paths returns sorted baseline paths
func (b Baseline) Paths() []string {
	paths := make([]string, 0, len(b))
	for k := range b {
		paths = append(paths, k)
	}
	slices.Sort(paths)
	return paths
}

// Without returns baseline without paths matching any of patterns
func (b Baseline) Without(patterns []string) Baseline {
	out := make(Baseline, len(b))
	for k, v := range b {
		if lib.MatchAny(patterns, k) {
			continue
		}
		out[k] = v
	}
	return out
}

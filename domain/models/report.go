package models

import (
	"time"

	"github.com/cloudcopper/verity/lib/types"
)

type UnreadableFile struct {
	Path   string
	Reason string
}

// Report is the classification of every path of baseline and walk.
// Each path is in exactly one of the lists.
type Report struct {
	RunID      RunID
	Modified   []string
	New        []string
	Deleted    []string
	Unreadable []UnreadableFile
	// Unchanged is not printed, but kept to let callers
	// check all paths are accounted
	Unchanged []string
	Files     int
	Size      types.Size
	Elapsed   time.Duration
}

func (r *Report) HasChanges() bool {
	return len(r.Modified) != 0 || len(r.New) != 0 || len(r.Deleted) != 0 || len(r.Unreadable) != 0
}

// Paths returns all classified paths
func (r *Report) Paths() []string {
	paths := []string{}
	paths = append(paths, r.Unchanged...)
	paths = append(paths, r.Modified...)
	paths = append(paths, r.New...)
	paths = append(paths, r.Deleted...)
	for _, u := range r.Unreadable {
		paths = append(paths, u.Path)
	}
	return paths
}

package verity

import (
	"fmt"
	"strings"

	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/lib"
)

// Classify puts every path of baseline and observed state into exactly one
// of unchanged, modified, new, deleted or unreadable.
// It does no IO, the observed state must be complete
// and each observed path must be unique.
//
// The modified, new and unreadable keep the observed order,
// the deleted ones are sorted.
// The observed file missing in baseline is new even if it could not be read.
// The baseline file which could not be read is unreadable, or modified
// when policy is vo.CountAsModified. Same applies for baseline files under
// directory which could not be listed, those are not deleted.
func Classify(baseline models.Baseline, observed []models.Observation, policy vo.ReadErrorPolicy) *models.Report {
	report := &models.Report{}
	visited := map[string]bool{}
	unreadableDirs := []models.Observation{}

	unreadable := func(path string, err error) {
		if policy == vo.CountAsModified {
			report.Modified = append(report.Modified, path)
			return
		}
		report.Unreadable = append(report.Unreadable, models.UnreadableFile{Path: path, Reason: failureReason(err)})
	}

	for _, o := range observed {
		if o.Dir {
			unreadableDirs = append(unreadableDirs, o)
			continue
		}
		lib.Assert(!visited[o.Path], "path %q observed twice", o.Path)
		visited[o.Path] = true

		expected, known := baseline[o.Path]
		switch {
		case !known:
			report.New = append(report.New, o.Path)
		case o.Err != nil:
			unreadable(o.Path, o.Err)
		case expected == o.Digest:
			report.Unchanged = append(report.Unchanged, o.Path)
		default:
			report.Modified = append(report.Modified, o.Path)
		}
	}

	// Only complete walk tells what is gone
	for _, path := range baseline.Paths() {
		if visited[path] {
			continue
		}
		if dir, ok := underDir(unreadableDirs, path); ok {
			unreadable(path, fmt.Errorf("%w: %v: %w", errors.ErrDirectoryUnreadable, dir.Path, dir.Err))
			continue
		}
		report.Deleted = append(report.Deleted, path)
	}

	return report
}

func underDir(dirs []models.Observation, path string) (models.Observation, bool) {
	for _, dir := range dirs {
		if path == dir.Path || strings.HasPrefix(path, dir.Path+"/") {
			return dir, true
		}
	}
	return models.Observation{}, false
}

func failureReason(err error) string {
	var failure *models.ReadFailure
	if errors.As(err, &failure) {
		return fmt.Sprintf("%v: %v", failure.Reason, failure.Err)
	}
	return err.Error()
}

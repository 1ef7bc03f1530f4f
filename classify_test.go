package verity

import (
	"slices"
	"testing"

	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/stretchr/testify/require"
)

func observedFiles(a ...string) []models.Observation {
	observed := []models.Observation{}
	for x := 0; x < len(a); x += 2 {
		observed = append(observed, models.Observation{Path: a[x], Digest: a[x+1]})
	}
	return observed
}

// requirePartition checks every path is classified exactly once
func requirePartition(t *testing.T, baseline models.Baseline, observed []models.Observation, report *models.Report) {
	assert := require.New(t)
	expected := map[string]bool{}
	for path := range baseline {
		expected[path] = true
	}
	for _, o := range observed {
		if !o.Dir {
			expected[o.Path] = true
		}
	}
	paths := report.Paths()
	seen := map[string]bool{}
	for _, path := range paths {
		assert.False(seen[path], "path %v classified twice", path)
		seen[path] = true
	}
	assert.Equal(expected, seen)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		desc       string
		baseline   models.Baseline
		observed   []models.Observation
		unchanged  []string
		modified   []string
		new        []string
		deleted    []string
		hasChanges bool
	}{
		{
			desc:     "combined",
			baseline: models.Baseline{"a": "11", "b": "22", "c": "33"},
			observed: observedFiles("a", "11", "b", "99", "d", "44"),

			unchanged:  []string{"a"},
			modified:   []string{"b"},
			new:        []string{"d"},
			deleted:    []string{"c"},
			hasChanges: true,
		},
		{
			desc:     "no change",
			baseline: models.Baseline{"a": "11", "sub/b": "22"},
			observed: observedFiles("a", "11", "sub/b", "22"),

			unchanged: []string{"a", "sub/b"},
		},
		{
			desc:     "empty baseline",
			baseline: models.Baseline{},
			observed: observedFiles("z", "11", "a", "22"),

			new:        []string{"z", "a"},
			hasChanges: true,
		},
		{
			desc:     "empty walk",
			baseline: models.Baseline{"z": "11", "a": "22", "m/n": "33"},
			observed: observedFiles(),

			deleted:    []string{"a", "m/n", "z"},
			hasChanges: true,
		},
		{
			desc:     "both empty",
			baseline: models.Baseline{},
			observed: observedFiles(),
		},
		{
			desc:     "modification keeps walk order",
			baseline: models.Baseline{"a": "11", "b": "22", "c": "33"},
			observed: observedFiles("c", "00", "a", "00", "b", "22"),

			unchanged:  []string{"b"},
			modified:   []string{"c", "a"},
			hasChanges: true,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			assert := require.New(t)
			report := Classify(test.baseline, test.observed, vo.ReportUnreadable)
			assert.Equal(test.unchanged, report.Unchanged)
			assert.Equal(test.modified, report.Modified)
			assert.Equal(test.new, report.New)
			assert.Equal(test.deleted, report.Deleted)
			assert.Empty(report.Unreadable)
			assert.Equal(test.hasChanges, report.HasChanges())
			requirePartition(t, test.baseline, test.observed, report)

			// Same input, same output
			again := Classify(test.baseline, test.observed, vo.ReportUnreadable)
			assert.Equal(report, again)
		})
	}
}

func TestClassifyUnreadable(t *testing.T) {
	failure := &models.ReadFailure{Path: "files/b", Reason: vo.ReadFailureIOError, Err: errors.ErrDirectoryUnreadable}
	baseline := models.Baseline{"a": "11", "b": "22", "sub/c": "33", "subway": "44"}
	observed := []models.Observation{
		{Path: "a", Digest: "11"},
		{Path: "b", Err: failure},
		{Path: "n", Err: failure},
		{Path: "sub", Dir: true, Err: errors.ErrDirectoryUnreadable},
	}

	t.Run("report", func(t *testing.T) {
		assert := require.New(t)
		report := Classify(baseline, observed, vo.ReportUnreadable)
		assert.Equal([]string{"a"}, report.Unchanged)
		assert.Empty(report.Modified)
		assert.Equal([]string{"n"}, report.New)
		assert.Equal([]string{"subway"}, report.Deleted)
		assert.Len(report.Unreadable, 2)
		assert.Equal("b", report.Unreadable[0].Path)
		assert.Contains(report.Unreadable[0].Reason, "io error")
		assert.Equal("sub/c", report.Unreadable[1].Path)
		assert.Contains(report.Unreadable[1].Reason, "directory unreadable")
		assert.True(report.HasChanges())
		requirePartition(t, baseline, observed, report)
	})

	t.Run("modified", func(t *testing.T) {
		assert := require.New(t)
		report := Classify(baseline, observed, vo.CountAsModified)
		assert.Equal([]string{"b", "sub/c"}, report.Modified)
		assert.Equal([]string{"n"}, report.New)
		assert.Equal([]string{"subway"}, report.Deleted)
		assert.Empty(report.Unreadable)
		requirePartition(t, baseline, observed, report)
	})
}

func TestClassifyDeletedSorted(t *testing.T) {
	assert := require.New(t)
	baseline := models.Baseline{}
	for _, path := range []string{"q", "b/z", "b/a", "a", "zz", "0"} {
		baseline[path] = "00"
	}
	report := Classify(baseline, nil, vo.ReportUnreadable)
	assert.True(slices.IsSorted(report.Deleted))
	assert.Len(report.Deleted, len(baseline))
}

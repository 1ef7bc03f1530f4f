package lib

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanRelPath(t *testing.T) {
	// back slash is separator on windows only
	backSlashes, driveRelative, driveErr := `dir\sub\a.txt`, "c:file", error(nil)
	if filepath.Separator == '\\' {
		backSlashes, driveErr = "dir/sub/a.txt", ErrNotRelativePath
	}

	testCases := []struct {
		desc string
		in   string
		out  string
		err  error
	}{
		{desc: "plain", in: "a.txt", out: "a.txt"},
		{desc: "nested", in: "dir/sub/a.txt", out: "dir/sub/a.txt"},
		{desc: "leading dot slash", in: "./dir/a.txt", out: "dir/a.txt"},
		{desc: "back slashes", in: `dir\sub\a.txt`, out: backSlashes},
		{desc: "drive relative", in: "c:file", out: driveRelative, err: driveErr},
		{desc: "double slash", in: "dir//a.txt", out: "dir/a.txt"},
		{desc: "inner dot dot", in: "dir/x/../a.txt", out: "dir/a.txt"},
		{desc: "spaces kept inside", in: "my dir/a b.txt", out: "my dir/a b.txt"},
		{desc: "empty", in: "", err: ErrNotRelativePath},
		{desc: "dot", in: ".", err: ErrNotRelativePath},
		{desc: "absolute", in: "/etc/passwd", err: ErrNotRelativePath},
		{desc: "escape", in: "../secret", err: ErrNotRelativePath},
		{desc: "escape after clean", in: "a/../../secret", err: ErrNotRelativePath},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert := require.New(t)
			out, err := CleanRelPath(tC.in)
			if tC.err != nil {
				assert.ErrorIs(err, tC.err)
				return
			}
			assert.NoError(err)
			assert.Equal(tC.out, out)
		})
	}
}

func TestRelPath(t *testing.T) {
	assert := require.New(t)

	rel, err := RelPath("/mnt/monitor", "/mnt/monitor/etc/hosts")
	assert.NoError(err)
	assert.Equal("etc/hosts", rel)

	rel, err = RelPath("files_to_monitor", "files_to_monitor/a.txt")
	assert.NoError(err)
	assert.Equal("a.txt", rel)

	_, err = RelPath("/mnt/monitor", "/mnt/monitor")
	assert.ErrorIs(err, ErrNotRelativePath)
}

func TestRelPathKeepsBackSlash(t *testing.T) {
	if filepath.Separator == '\\' {
		t.Skip("back slash is separator")
	}
	assert := require.New(t)
	for _, name := range []string{`weird\name.txt`, `sub\x`, `..\evil`, `a\..\..\b`} {
		rel, err := RelPath("/mnt/monitor", "/mnt/monitor/"+name)
		assert.NoError(err)
		assert.Equal(name, rel)
	}
}

func TestMatchAny(t *testing.T) {
	testCases := []struct {
		desc     string
		patterns []string
		name     string
		match    bool
	}{
		{desc: "no patterns", patterns: nil, name: "a.txt", match: false},
		{desc: "base name", patterns: []string{"*.tmp"}, name: "dir/sub/x.tmp", match: true},
		{desc: "base name miss", patterns: []string{"*.tmp"}, name: "dir/sub/x.txt", match: false},
		{desc: "anchored", patterns: []string{"cache/**"}, name: "cache/a/b", match: true},
		{desc: "anchored miss", patterns: []string{"cache/**"}, name: "dir/cache/a", match: false},
		{desc: "double star", patterns: []string{"**/cache/**"}, name: "dir/cache/a", match: true},
		{desc: "second pattern", patterns: []string{"*.log", "*.bak"}, name: "x.bak", match: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert := require.New(t)
			assert.Equal(tC.match, MatchAny(tC.patterns, tC.name))
		})
	}
}

func TestIsHex(t *testing.T) {
	assert := require.New(t)
	assert.True(IsHex("0123456789abcdef"))
	assert.True(IsHex("ABCDEF"))
	assert.False(IsHex(""))
	assert.False(IsHex("xyz"))
	assert.False(IsHex("ab cd"))
}

func TestErrorCode(t *testing.T) {
	assert := require.New(t)
	const errSome = Error("some")
	var err error = NewErrorCode(errSome, 42)
	assert.ErrorIs(err, errSome)
	code, ok := err.(ErrorCode)
	assert.True(ok)
	assert.Equal(42, code.Code())
}

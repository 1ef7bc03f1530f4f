package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudcopper/verity/domain/errors"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, int) {
	out := &bytes.Buffer{}
	cmd := newRootCmd(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), exitCode(err)
}

func TestVerityCommand(t *testing.T) {
	assert := require.New(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "files")
	baseline := filepath.Join(dir, "baseline.sha256sum")
	history := filepath.Join(dir, "history.db")
	assert.NoError(os.MkdirAll(target, 0o755))
	assert.NoError(os.WriteFile(filepath.Join(target, "hello.txt"), []byte("hello"), 0o644))
	assert.NoError(os.WriteFile(baseline, []byte("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824  hello.txt\n"), 0o644))

	out, code := execute(t, "--target", target, "--baseline", baseline, "--history", history, "--no-color")
	assert.Equal(retNoErrorCode, code)
	assert.Contains(out, "All files are OK. No changes detected.")

	assert.NoError(os.WriteFile(filepath.Join(target, "new.txt"), []byte("new"), 0o644))
	out, code = execute(t, "verify", "--target", target, "--baseline", baseline, "--history", history, "--no-color", "--strict")
	assert.Equal(errors.RetChangesDetected, code)
	assert.Contains(out, "NEW FILES DETECTED:\n  - new.txt\n")

	out, code = execute(t, "verify", "--target", target, "--baseline", baseline, "--exclude", "new.*", "--no-color", "--strict", "--workers", "2")
	assert.Equal(retNoErrorCode, code)
	assert.Contains(out, "All files are OK.")

	out, code = execute(t, "history", "--history", history, "--no-color", "--since", "1w")
	assert.Equal(retNoErrorCode, code)
	assert.Equal(2, bytes.Count([]byte(out), []byte("sha256")))
}

func TestVerityCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		desc string
		args []string
		code int
	}{
		{"missing target", []string{"--target", filepath.Join(dir, "nope"), "--baseline", filepath.Join(dir, "nope.json")}, errors.RetTargetDirectoryMissing},
		{"missing baseline", []string{"--target", dir, "--baseline", filepath.Join(dir, "nope.json")}, errors.RetBaselineNotFound},
		{"unknown algo", []string{"--target", dir, "--algo", "md5"}, errors.RetLoadConfigError},
		{"wrong policy", []string{"--target", dir, "--unreadable", "ignore"}, errors.RetLoadConfigError},
		{"bad glob", []string{"--target", dir, "--exclude", "[a"}, errors.RetLoadConfigError},
		{"no history", []string{"history", "--history", filepath.Join(dir, "nope.db")}, errors.RetQueryHistoryError},
		{"bad since", []string{"history", "--history", filepath.Join(dir, "nope.db"), "--since", "soon"}, errors.RetQueryHistoryError},
		{"unknown flag", []string{"--unknown"}, retGenericErrorCode},
		{"extra args", []string{"verify", "path"}, retGenericErrorCode},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, code := execute(t, test.args...)
			require.Equal(t, test.code, code)
		})
	}
}

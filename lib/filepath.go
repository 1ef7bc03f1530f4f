package lib

import (
	"path"
	"path/filepath"
	"strings"
)

const ErrNotRelativePath = Error("not relative path")

// RelPath returns name of the walked file relative to root in the slash form.
// Only the os separator is converted, the name is never rewritten
// otherwise, so on unix back slash stays part of the file name.
func RelPath(root, name string) (string, error) {
	rel, err := filepath.Rel(root, name)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrNotRelativePath
	}
	return rel, nil
}

// CleanRelPath normalizes path read from baseline file:
// leading ./ is removed and the path is cleaned.
// The back slash is separator on windows only.
// Empty, absolute and escaping (..) paths are rejected,
// as are names with volume ('c:file') on windows.
// On unix 'c:file' is regular file name.
// Example:
// './etc/hosts' -> 'etc/hosts'
// 'a//b/../c' -> 'a/c'
func CleanRelPath(name string) (string, error) {
	if filepath.Separator == '\\' {
		name = strings.ReplaceAll(name, `\`, "/")
	}
	if name == "" || strings.HasPrefix(name, "/") || filepath.VolumeName(name) != "" {
		return "", ErrNotRelativePath
	}
	name = path.Clean(name)
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", ErrNotRelativePath
	}
	return name, nil
}

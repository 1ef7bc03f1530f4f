package lib

import (
	"errors"
	"os"

	"github.com/spf13/afero"
)

// NoSuchFile return true if file name does not exists
func NoSuchFile(fs afero.Fs, name string) bool {
	if _, err := fs.Stat(name); errors.Is(err, os.ErrNotExist) {
		return true
	}
	return false
}

// IsDir returns true only if name exists and is directory
func IsDir(fs afero.Fs, name string) bool {
	ok, err := afero.IsDir(fs, name)
	return ok && err == nil
}

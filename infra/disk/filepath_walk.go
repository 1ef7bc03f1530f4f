package disk

import (
	"io/fs"
	"path/filepath"

	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/ports"
	"github.com/spf13/afero"
)

type FilepathWalk struct {
	fs ports.FS
}

func NewFilepathWalk(f ports.FS) FilepathWalk {
	return FilepathWalk{f}
}

// Walk calls fn for every regular file under root in lexical order.
// The path given to fn is the file name to open,
// the name is the same relative to root in slash form.
// Symlinks and other non regular files are not reported and never followed.
// Entries which can not be read are reported with err set, the walk goes on.
// The dir is true only for directory which could not be listed.
// The walk stops on first error returned by fn.
func (f *FilepathWalk) Walk(root string, fn func(path, name string, dir bool, err error) error) error {
	// The trailing separator makes lstat follow root given as symlink
	top := root + string(filepath.Separator)
	return afero.Walk(f.fs, top, func(path string, info fs.FileInfo, err error) error {
		if path == top {
			// Root problems are up to the caller
			return err
		}
		name, relErr := lib.RelPath(root, path)
		if relErr != nil {
			return relErr
		}
		if err != nil {
			// Failed lstat gives no info, the entry is taken as file
			dir := info != nil && info.IsDir()
			return fn(path, name, dir, err)
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		return fn(path, name, false, nil)
	})
}

package infra

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudcopper/verity/lib"
)

// LayerFileSystem reads file from first layer having it.
// It is used to look up config files: top root, working dir,
// and defaults embed into the binary.
type LayerFileSystem struct {
	layers []fs.ReadFileFS
}

const ErrWrongParamType = lib.Error("wrong param type")

// NewLayerFileSystem accepts layers in lookup order:
//   - string - directory path, the ${NAME} takes path from env, empty string is skipped
//   - func() (string, error) - directory path getter, like os.Getwd
//   - fs.ReadFileFS - like embed.FS or fstest.MapFS
func NewLayerFileSystem(params ...interface{}) (*LayerFileSystem, error) {
	l := &LayerFileSystem{}
	for _, p := range params {
		if err := l.Append(p); err != nil {
			return l, err
		}
	}
	return l, nil
}

func (l *LayerFileSystem) Append(p interface{}) error {
	switch v := p.(type) {
	case func() (string, error):
		path, err := v()
		if err != nil {
			return err
		}
		return l.Append(path)

	case string:
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
			v = os.Getenv(v[2 : len(v)-1])
		}
		if v == "" {
			return nil
		}
		lib.Assert(!strings.Contains(v, ".."), "layer path %v must not have ..", v)
		l.layers = append(l.layers, &osFileSystem{v})

	case *LayerFileSystem:
		l.layers = append(l.layers, v.layers...)

	case fs.ReadFileFS:
		l.layers = append(l.layers, v)

	default:
		return ErrWrongParamType
	}

	return nil
}

func (l *LayerFileSystem) Open(name string) (fs.File, error) {
	for _, layer := range l.layers {
		f, err := layer.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return f, err
	}
	return nil, fs.ErrNotExist
}

func (l *LayerFileSystem) ReadFile(name string) ([]byte, error) {
	for _, layer := range l.layers {
		data, err := layer.ReadFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return data, err
	}
	return nil, fs.ErrNotExist
}

type osFileSystem struct {
	root string
}

func (o *osFileSystem) Open(name string) (fs.File, error) {
	return os.Open(filepath.Join(o.root, name))
}

func (o *osFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(o.root, name))
}

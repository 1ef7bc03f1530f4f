package infra

import (
	"bytes"
	"fmt"

	"github.com/cloudcopper/verity/adapters"
	"github.com/cloudcopper/verity/ports"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// BaselineYAML reads mapping of relative path to hex digest
//
//	etc/hosts: 2cf24d...
type BaselineYAML struct {
}

func (*BaselineYAML) ParseBaseline(f ports.FS, fileName string) (map[string]string, error) {
	data, err := afero.ReadFile(f, fileName)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ports.ErrWrongBaselineFormat)
	}

	m := map[string]string{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrWrongBaselineFormat, err)
	}
	return m, nil
}

func init() {
	adapters.RegisterBaselineCodec(200, "*.yml", &BaselineYAML{})
	adapters.RegisterBaselineCodec(201, "*.yaml", &BaselineYAML{})
}

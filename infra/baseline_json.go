package infra

import (
	"bytes"
	"fmt"

	"github.com/cloudcopper/verity/adapters"
	"github.com/cloudcopper/verity/ports"
	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// BaselineJSON reads object of relative path to hex digest
//
//	{"etc/hosts": "2cf24d...", ...}
type BaselineJSON struct {
}

func (*BaselineJSON) ParseBaseline(f ports.FS, fileName string) (map[string]string, error) {
	data, err := afero.ReadFile(f, fileName)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil, fmt.Errorf("%w: json object expected", ports.ErrWrongBaselineFormat)
	}

	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrWrongBaselineFormat, err)
	}
	return m, nil
}

func init() {
	adapters.RegisterBaselineCodec(100, "*.json", &BaselineJSON{})
	// Anything unknown is tried as json as well
	adapters.RegisterBaselineCodec(1000000, "*", &BaselineJSON{})
}

package infra

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/cloudcopper/verity/adapters"
	"github.com/cloudcopper/verity/ports"
)

// BaselineSumFile reads output of sha256sum and friends:
//
//	2cf24d...  etc/hosts
//	2cf24d... *bin/blob
//
// The lines starting with # and empty lines are skipped.
type BaselineSumFile struct {
}

func (s *BaselineSumFile) ParseBaseline(f ports.FS, fileName string) (map[string]string, error) {
	file, err := f.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m := map[string]string{}
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		checksum, name, ok := strings.Cut(line, " ")
		if !ok || checksum == "" {
			return nil, fmt.Errorf("%w: line %v: no checksum", ports.ErrWrongBaselineFormat, n)
		}
		// second char is mode: ' ' text, '*' binary
		if !strings.HasPrefix(name, " ") && !strings.HasPrefix(name, "*") {
			return nil, fmt.Errorf("%w: line %v: no mode", ports.ErrWrongBaselineFormat, n)
		}
		name = name[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: line %v: no file name", ports.ErrWrongBaselineFormat, n)
		}
		if _, exists := m[name]; exists {
			return nil, fmt.Errorf("%w: line %v: %q listed twice", ports.ErrWrongBaselineFormat, n, name)
		}
		m[name] = checksum
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

func init() {
	codec := &BaselineSumFile{}
	adapters.RegisterBaselineCodec(300, "*.sha256sum", codec)
	adapters.RegisterBaselineCodec(301, "*.sha512sum", codec)
	adapters.RegisterBaselineCodec(302, "*.b3sum", codec)
	adapters.RegisterBaselineCodec(303, "*.sums", codec)
	adapters.RegisterBaselineCodec(304, "*SUMS", codec)
}

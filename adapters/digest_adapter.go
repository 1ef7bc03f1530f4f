package adapters

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"slices"

	domainErrors "github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/ports"
)

// DigestBufferSize bounds memory used per hashed file
const DigestBufferSize = 64 * 1024

const DefaultDigestAlgo = "sha256"

var digestAlgos = map[string]ports.DigestAlgo{}

func RegisterDigestAlgo(name string, algo ports.DigestAlgo) {
	_, exists := digestAlgos[name]
	lib.Assert(!exists, "digest algo %v registered twice", name)
	digestAlgos[name] = algo
}

// DigestAlgo returns registered algorithm by name
func DigestAlgo(name string) (ports.DigestAlgo, error) {
	algo, ok := digestAlgos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrUnknownDigestAlgo, name)
	}
	return algo, nil
}

func IsDigestAlgo(name string) bool {
	_, ok := digestAlgos[name]
	return ok
}

// DigestAlgoNames returns sorted names of registered algorithms
func DigestAlgoNames() []string {
	names := []string{}
	for name := range digestAlgos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Digest streams fileName content through the algo by DigestBufferSize chunks.
// It returns lowercase hex digest and count of hashed bytes,
// or *models.ReadFailure error.
// Only the content matters, the file metadata is never looked at.
func Digest(f ports.FS, algo ports.DigestAlgo, fileName string) (string, int64, error) {
	file, err := f.Open(fileName)
	if err != nil {
		return "", 0, &models.ReadFailure{Path: fileName, Reason: vo.ReadFailureNotFound, Err: err}
	}
	defer file.Close()

	hash := algo.New()
	buf := make([]byte, DigestBufferSize)
	size := int64(0)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			hash.Write(buf[:n])
			size += int64(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", size, &models.ReadFailure{Path: fileName, Reason: vo.ReadFailureIOError, Err: err}
		}
	}

	return hex.EncodeToString(hash.Sum(nil)), size, nil
}

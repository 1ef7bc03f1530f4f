package models

import (
	"fmt"

	"github.com/cloudcopper/verity/domain/vo"
)

// Observation is one walked entry of the target directory.
// Normally it is regular file with computed digest.
// The Err is set when digest could not be computed,
// or, with Dir set, when directory could not be listed.
// The Path is the key relative to target, the FileName is the one to open.
type Observation struct {
	Path     string
	FileName string
	Digest   string
	Size     int64
	Dir      bool
	Err      error
}

// ReadFailure is returned by digest engine when file content
// could not be hashed
type ReadFailure struct {
	Path   string
	Reason vo.ReadFailureReason
	Err    error
}

func (e *ReadFailure) Error() string {
	return fmt.Sprintf("%v: %v: %v", e.Path, e.Reason, e.Err)
}

func (e *ReadFailure) Unwrap() error {
	return e.Err
}

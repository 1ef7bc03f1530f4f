package ports

import "github.com/cloudcopper/verity/lib"

const ErrWrongBaselineFormat = lib.Error("wrong baseline format")

type BaselineCodec interface {
	// ParseBaseline returns raw path to digest mapping as written in the file.
	// Shall return ErrWrongBaselineFormat when content can not be parsed.
	ParseBaseline(fs FS, fileName string) (map[string]string, error)
}

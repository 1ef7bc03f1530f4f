package errors

import (
	"errors"

	"github.com/cloudcopper/verity/lib"
)

const ErrBaselineNotFound = lib.Error("baseline not found")
const ErrBaselineCorrupt = lib.Error("baseline corrupt")
const ErrTargetDirectoryMissing = lib.Error("target directory missing")
const ErrUnknownDigestAlgo = lib.Error("unknown digest algo")
const ErrUnknownBaselineFormat = lib.Error("unknown baseline format")
const ErrDirectoryUnreadable = lib.Error("directory unreadable")
const ErrIncorrectRunID = lib.Error("incorrect run id")
const ErrChangesDetected = lib.Error("changes detected")
const ErrHistoryNotFound = lib.Error("history not found")

var Is = errors.Is
var As = errors.As

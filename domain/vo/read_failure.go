package vo

type ReadFailureReason int

const (
	// ReadFailureNotFound - file is gone or could not be opened
	ReadFailureNotFound ReadFailureReason = 1
	// ReadFailureIOError - file was opened, but reading failed
	ReadFailureIOError ReadFailureReason = 2
)

func (r ReadFailureReason) String() string {
	switch r {
	case ReadFailureNotFound:
		return "not found"
	case ReadFailureIOError:
		return "io error"
	}
	return "unknown"
}

// ReadErrorPolicy tells how a baseline file which can not be hashed is classified
type ReadErrorPolicy string

const (
	// ReportUnreadable keeps such files in own unreadable list
	ReportUnreadable ReadErrorPolicy = "report"
	// CountAsModified treats such files as changed content
	CountAsModified ReadErrorPolicy = "modified"
)

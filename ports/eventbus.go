package ports

type Topic = string
type Event = []string
type EventBus interface {
	Shutdown()
	Pub(Topic, Event)
	Sub(...Topic) chan Event
	Unsub(chan Event)
}

const (
	TopicRun Topic = "run"
)

// The first element of every TopicRun event tells its kind,
// the second one is the run id.
const (
	EventRunStarted  = "started"  // runID, target, baseline, algo, startedAt
	EventRunFinding  = "finding"  // runID, kind, path, detail
	EventRunComplete = "complete" // runID, finishedAt, files, size
)

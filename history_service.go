package verity

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/cloudcopper/verity/domain"
	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/ports"
)

type HistoryService struct {
	log           ports.Logger
	bus           ports.EventBus
	runRepository domain.RunRepository
	chTopicRun    chan ports.Event
	closeWg       sync.WaitGroup
}

// NewHistoryService create history service:
// - record runs published by verify service into run repository
func NewHistoryService(log ports.Logger, bus ports.EventBus, runRepository domain.RunRepository) *HistoryService {
	log = log.With(slog.String("entity", "HistoryService"))
	s := &HistoryService{
		log:           log,
		bus:           bus,
		runRepository: runRepository,
		chTopicRun:    bus.Sub(ports.TopicRun),
	}

	s.closeWg.Add(1)
	go func() {
		defer s.closeWg.Done()
		log.Debug("process started")
		defer log.Debug("process complete")
		s.background()
	}()

	return s
}

// Close waits till all events published before are recorded
func (s *HistoryService) Close() {
	s.log.Debug("closing")
	s.bus.Unsub(s.chTopicRun)
	s.closeWg.Wait()
}

func (s *HistoryService) background() {
	for {
		select {
		case event, ok := <-s.chTopicRun:
			if !ok {
				return
			}
			s.record(event)
		}
	}
}

func (s *HistoryService) record(event ports.Event) {
	if len(event) < 2 {
		s.log.Error("malformed event", slog.Any("event", event))
		return
	}
	kind, log := event[0], s.log.With(slog.String("runID", event[1]))
	expect := map[string]int{
		ports.EventRunStarted:  6,
		ports.EventRunFinding:  5,
		ports.EventRunComplete: 5,
	}
	if n, ok := expect[kind]; !ok || n != len(event) {
		log.Error("malformed event", slog.Any("event", event))
		return
	}

	var err error
	switch kind {
	case ports.EventRunStarted:
		run := &models.Run{
			RunID:     event[1],
			Target:    event[2],
			Baseline:  event[3],
			Algo:      event[4],
			StartedAt: parseInt(event[5]),
		}
		err = s.runRepository.Create(run)
	case ports.EventRunFinding:
		changeKind, ok := vo.ParseChangeKind(event[2])
		if !ok {
			log.Error("unknown change kind", slog.String("kind", event[2]))
			return
		}
		finding := &models.Finding{
			RunID:  event[1],
			Kind:   changeKind,
			Path:   event[3],
			Detail: event[4],
		}
		err = s.runRepository.AddFinding(finding)
	case ports.EventRunComplete:
		err = s.runRepository.Complete(event[1], parseInt(event[2]), int(parseInt(event[3])), parseInt(event[4]))
	}
	if err != nil {
		log.Error("unable to record run", slog.String("event", kind), slog.Any("err", err))
		return
	}
	log.Debug("recorded", slog.String("event", kind))
}

func parseInt(s string) int64 {
	i, _ := strconv.ParseInt(s, 10, 64)
	return i
}

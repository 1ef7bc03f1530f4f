package verity

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cloudcopper/verity/adapters"
	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/infra/config"
	"github.com/cloudcopper/verity/infra/disk"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/lib/types"
	"github.com/cloudcopper/verity/ports"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

type VerifyService struct {
	log      ports.Logger
	bus      ports.EventBus
	fs       ports.FS
	walk     disk.FilepathWalk
	algoName string
	algo     ports.DigestAlgo
	exclude  []string
	workers  int
	policy   vo.ReadErrorPolicy
}

// NewVerifyService creates service checking directory trees against baselines.
// The outcome of every successful verification is published to ports.TopicRun.
func NewVerifyService(log ports.Logger, bus ports.EventBus, fs ports.FS, cfg *config.Config) (*VerifyService, error) {
	log = log.With(slog.String("entity", "VerifyService"))
	algo, err := adapters.DigestAlgo(cfg.Algo)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	policy := cfg.Unreadable
	if policy == "" {
		policy = vo.ReportUnreadable
	}

	s := &VerifyService{
		log:      log,
		bus:      bus,
		fs:       fs,
		walk:     disk.NewFilepathWalk(fs),
		algoName: cfg.Algo,
		algo:     algo,
		exclude:  cfg.Exclude,
		workers:  workers,
		policy:   policy,
	}
	return s, nil
}

// Verify compares files under target with baseline stored in baselineFile.
// The missing target, missing or corrupt baseline are terminal errors,
// no report is produced then.
func (s *VerifyService) Verify(ctx context.Context, target, baselineFile string) (*models.Report, error) {
	log := s.log.With(slog.String("target", target), slog.String("baseline", baselineFile))
	startedAt := time.Now()

	if !lib.IsDir(s.fs, target) {
		log.Error("target directory not found")
		return nil, fmt.Errorf("%w: %v", errors.ErrTargetDirectoryMissing, target)
	}

	baseline, err := adapters.LoadBaseline(log, s.fs, baselineFile)
	if err != nil {
		return nil, err
	}
	s.checkDigestLength(log, baseline)
	baseline = baseline.Without(s.exclude)

	log.Info("starting integrity check", slog.Int("entries", len(baseline)), slog.String("algo", s.algoName))
	observed, err := s.scan(ctx, log, target)
	if err != nil {
		return nil, err
	}
	if err := s.digestAll(ctx, log, observed); err != nil {
		return nil, err
	}

	report := Classify(baseline, observed, s.policy)
	report.RunID = ulid.Make().String()
	for _, o := range observed {
		if o.Dir {
			continue
		}
		report.Files++
		report.Size += types.Size(o.Size)
	}
	report.Elapsed = time.Since(startedAt)

	log.Info("integrity check complete",
		slog.String("runID", report.RunID),
		slog.Int("files", report.Files),
		slog.Int("modified", len(report.Modified)),
		slog.Int("new", len(report.New)),
		slog.Int("deleted", len(report.Deleted)),
		slog.Int("unreadable", len(report.Unreadable)),
		slog.Duration("elapsed", report.Elapsed))

	s.publish(report, target, baselineFile, startedAt)
	return report, nil
}

// The scan lists regular files of target in lexical order.
// The excluded paths are dropped right here.
func (s *VerifyService) scan(ctx context.Context, log ports.Logger, target string) ([]models.Observation, error) {
	observed := []models.Observation{}
	err := s.walk.Walk(target, func(fileName, name string, dir bool, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if lib.MatchAny(s.exclude, name) {
			log.Debug("excluded", slog.String("name", name))
			return nil
		}
		if err != nil {
			log.Warn("unable to read", slog.String("name", name), slog.Bool("dir", dir), slog.Any("err", err))
			if !dir {
				err = &models.ReadFailure{Path: fileName, Reason: vo.ReadFailureNotFound, Err: err}
			}
			observed = append(observed, models.Observation{Path: name, FileName: fileName, Dir: dir, Err: err})
			return nil
		}
		observed = append(observed, models.Observation{Path: name, FileName: fileName})
		return nil
	})
	return observed, err
}

// The digestAll fills digests of observed files.
// Each observation is written by single worker only,
// so the order stays as walked.
func (s *VerifyService) digestAll(ctx context.Context, log ports.Logger, observed []models.Observation) error {
	digest := func(i int) {
		o := &observed[i]
		if o.Dir || o.Err != nil {
			return
		}
		o.Digest, o.Size, o.Err = adapters.Digest(s.fs, s.algo, o.FileName)
		if o.Err != nil {
			log.Warn("unable to digest", slog.String("name", o.Path), slog.Any("err", o.Err))
		}
	}

	if s.workers == 1 {
		for i := range observed {
			if err := ctx.Err(); err != nil {
				return err
			}
			digest(i)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range observed {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			digest(i)
			return nil
		})
	}
	return g.Wait()
}

// The checkDigestLength warns when baseline was made by other algo.
// It is not an error, but every file would be modified then.
func (s *VerifyService) checkDigestLength(log ports.Logger, baseline models.Baseline) {
	expected := s.algo.New().Size() * 2
	for path, digest := range baseline {
		if len(digest) != expected {
			log.Warn("baseline digest length does not match algo",
				slog.String("algo", s.algoName),
				slog.String("path", path),
				slog.Int("length", len(digest)),
				slog.Int("expected", expected))
			return
		}
	}
}

func (s *VerifyService) publish(report *models.Report, target, baselineFile string, startedAt time.Time) {
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	id := report.RunID
	s.bus.Pub(ports.TopicRun, ports.Event{ports.EventRunStarted, id, target, baselineFile, s.algoName, strconv.FormatInt(startedAt.Unix(), 10)})

	finding := func(kind vo.ChangeKind, path, detail string) {
		s.bus.Pub(ports.TopicRun, ports.Event{ports.EventRunFinding, id, kind.String(), path, detail})
	}
	for _, path := range report.Modified {
		finding(vo.Modified, path, "")
	}
	for _, path := range report.New {
		finding(vo.New, path, "")
	}
	for _, path := range report.Deleted {
		finding(vo.Deleted, path, "")
	}
	for _, u := range report.Unreadable {
		finding(vo.Unreadable, u.Path, u.Reason)
	}

	finishedAt := strconv.FormatInt(time.Now().Unix(), 10)
	s.bus.Pub(ports.TopicRun, ports.Event{ports.EventRunComplete, id, finishedAt, strconv.Itoa(report.Files), strconv.FormatInt(int64(report.Size), 10)})
}

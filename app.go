package verity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/infra"
	"github.com/cloudcopper/verity/infra/config"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/lib/types"
	"github.com/cloudcopper/verity/ports"
	"github.com/spf13/afero"
)

// App checks cfg.Target against cfg.Baseline once and writes report to out.
// The run is recorded to history database, which is kept in memory
// unless cfg.History is given.
// Returned error is lib.ErrorCode with process exit code.
func App(ctx context.Context, log ports.Logger, cfg *config.Config, out io.Writer, color bool) error {
	var realFS ports.FS = afero.NewOsFs()

	// EventBus
	var bus ports.EventBus = infra.NewEventBus()
	defer bus.Shutdown()

	// Open history
	runRepository, closeDb, err := openHistory(log, cfg.History)
	if err != nil {
		return err
	}
	defer closeDb()
	// Create history service
	// - record published runs to history
	historyService := NewHistoryService(log, bus, runRepository)
	defer historyService.Close()

	// Create verify service
	verifyService, err := NewVerifyService(log, bus, realFS, cfg)
	if err != nil {
		log.Error("unable to create verify service", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetCreateVerifyServiceError)
	}

	report, err := verifyService.Verify(ctx, cfg.Target, cfg.Baseline)
	if err != nil {
		return verifyErrorCode(err)
	}
	if err := RenderReport(out, report, color); err != nil {
		return lib.NewErrorCode(err, errors.RetVerifyError)
	}

	if cfg.Strict && report.HasChanges() {
		return lib.NewErrorCode(errors.ErrChangesDetected, errors.RetChangesDetected)
	}
	return nil
}

func verifyErrorCode(err error) error {
	code := errors.RetVerifyError
	switch {
	case errors.Is(err, errors.ErrTargetDirectoryMissing):
		code = errors.RetTargetDirectoryMissing
	case errors.Is(err, errors.ErrBaselineNotFound):
		code = errors.RetBaselineNotFound
	case errors.Is(err, errors.ErrBaselineCorrupt), errors.Is(err, errors.ErrUnknownBaselineFormat):
		code = errors.RetBaselineCorrupt
	}
	return lib.NewErrorCode(err, code)
}

// History writes runs recorded in cfg.History to out, newest first.
// The since limits runs to ones started within the duration,
// the limit of zero means all runs.
func History(log ports.Logger, cfg *config.Config, since types.Duration, limit int, out io.Writer, color bool) error {
	if cfg.History == "" || lib.NoSuchFile(afero.NewOsFs(), cfg.History) {
		err := fmt.Errorf("%w: %q", errors.ErrHistoryNotFound, cfg.History)
		log.Error("no history", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetQueryHistoryError)
	}

	runRepository, closeDb, err := openHistory(log, cfg.History)
	if err != nil {
		return err
	}
	defer closeDb()

	flags := []interface{}{}
	if since != 0 {
		flags = append(flags, ports.Since(since.Before(time.Now()).Unix()))
	}
	if limit > 0 {
		flags = append(flags, ports.Limit(limit))
	}
	runs, err := runRepository.FindAll(flags...)
	if err != nil {
		log.Error("unable to query history", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetQueryHistoryError)
	}

	if err := RenderHistory(out, runs, color); err != nil {
		return lib.NewErrorCode(err, errors.RetQueryHistoryError)
	}
	return nil
}

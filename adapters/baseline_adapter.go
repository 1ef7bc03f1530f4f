package adapters

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/ports"
)

func RegisterBaselineCodec(prio int, pattern string, codec ports.BaselineCodec) {
	info := BaselineCodecInfo{prio, pattern, codec}
	baselineCodecs = append(baselineCodecs, info)
	sort.Slice(baselineCodecs, func(i, j int) bool {
		lib.Assert(baselineCodecs[i].prio != baselineCodecs[j].prio)
		return baselineCodecs[i].prio < baselineCodecs[j].prio
	})
}

type BaselineCodecInfo struct {
	prio    int
	pattern string
	codec   ports.BaselineCodec
}

var baselineCodecs = []BaselineCodecInfo{}

// LoadBaseline reads baseline file via first codec matching the file name.
// The returned baseline has normalized keys and lowercase digests.
// It fails with ErrBaselineNotFound when the file does not exist
// and ErrBaselineCorrupt when it can not be read or parsed, or has invalid entries.
func LoadBaseline(log ports.Logger, f ports.FS, baselineFileName string) (models.Baseline, error) {
	log = log.With(slog.String("baseline", baselineFileName))

	if lib.NoSuchFile(f, baselineFileName) {
		return nil, fmt.Errorf("%w: %v", errors.ErrBaselineNotFound, baselineFileName)
	}

	fileName := filepath.Base(baselineFileName)
	for _, it := range baselineCodecs {
		if ok, err := filepath.Match(it.pattern, fileName); !ok || err != nil {
			continue
		}
		log.Debug("baseline filename match pattern", slog.String("pattern", it.pattern))

		raw, err := it.codec.ParseBaseline(f, baselineFileName)
		switch {
		case errors.Is(err, ports.ErrWrongBaselineFormat):
			log.Warn("baseline is corrupt", slog.Any("err", err))
			return nil, fmt.Errorf("%w: %v: %w", errors.ErrBaselineCorrupt, baselineFileName, err)
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %v", errors.ErrBaselineNotFound, baselineFileName)
		case err != nil:
			// Exists, but can not be read, like directory or no permission
			log.Warn("baseline is unreadable", slog.Any("err", err))
			return nil, fmt.Errorf("%w: %v: %w", errors.ErrBaselineCorrupt, baselineFileName, err)
		}

		baseline, err := normalizeBaseline(raw)
		if err != nil {
			log.Warn("baseline has invalid entry", slog.Any("err", err))
			return nil, fmt.Errorf("%w: %v: %w", errors.ErrBaselineCorrupt, baselineFileName, err)
		}
		log.Debug("baseline loaded", slog.Int("entries", len(baseline)))
		return baseline, nil
	}

	return nil, fmt.Errorf("%w: %v", errors.ErrUnknownBaselineFormat, baselineFileName)
}

// The normalizeBaseline makes keys comparable with walk relative paths
func normalizeBaseline(raw map[string]string) (models.Baseline, error) {
	baseline := models.Baseline{}
	for k, v := range raw {
		key, err := lib.CleanRelPath(k)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", k, err)
		}
		if _, exists := baseline[key]; exists {
			return nil, fmt.Errorf("path %q: duplicated as %q", k, key)
		}
		digest := strings.ToLower(strings.TrimSpace(v))
		if !lib.IsHex(digest) {
			return nil, fmt.Errorf("path %q: digest %q is not hex", k, v)
		}
		baseline[key] = digest
	}
	return baseline, nil
}

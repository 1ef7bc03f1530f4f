package verity

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudcopper/verity/adapters"
	"github.com/cloudcopper/verity/adapters/repository"
	"github.com/cloudcopper/verity/infra"
	"github.com/cloudcopper/verity/infra/config"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/ports"
	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type testFakeAppInternals struct {
	db  ports.DB
	fs  ports.FS
	bus ports.EventBus
	rr  *repository.RunRepository
	vs  *VerifyService
	hs  *HistoryService
}

func testFakeApp(t *testing.T, fs afero.Fs, cfg *config.Config, callback func(*testFakeAppInternals)) {
	assert := require.New(t)
	noErr := func(err error) {
		assert.NoError(err)
		if err != nil {
			t.FailNow()
		}
	}

	// Create logger
	log := slog.Default()
	// Create eventbus
	var bus ports.EventBus = infra.NewEventBus()
	defer bus.Shutdown()
	// Create database, own one per test
	driver := infra.DriverSqlite
	source := fmt.Sprintf("file:%v?mode=memory&cache=shared&_pragma=foreign_keys(1)", ulid.Make())
	db, closeDb, err := infra.NewDatabase(log, driver, source)
	noErr(err)
	defer closeDb()
	noErr(infra.MigrateDatabase(db))
	// Create run repository
	runRepository, err := repository.NewRunRepository(db)
	noErr(err)
	// Create history service
	historyService := NewHistoryService(log, bus, runRepository)
	defer historyService.Close()
	// Create verify service
	verifyService, err := NewVerifyService(log, bus, fs, cfg)
	noErr(err)

	// Call the callback to continue test
	app := &testFakeAppInternals{
		db:  db,
		fs:  fs,
		bus: bus,
		rr:  runRepository,
		vs:  verifyService,
		hs:  historyService,
	}

	callback(app)
}

func testConfig(target, baseline string) *config.Config {
	cfg := config.Default()
	cfg.Target = target
	cfg.Baseline = baseline
	return cfg
}

// sealTree writes json baseline of all files under target
func sealTree(t *testing.T, fs afero.Fs, target, baselineFileName string) map[string]string {
	assert := require.New(t)
	algo, err := adapters.DigestAlgo(adapters.DefaultDigestAlgo)
	assert.NoError(err)

	baseline := map[string]string{}
	err = afero.Walk(fs, target, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		name, err := lib.RelPath(target, path)
		if err != nil {
			return err
		}
		digest, _, err := adapters.Digest(fs, algo, path)
		if err != nil {
			return err
		}
		baseline[name] = digest
		return nil
	})
	assert.NoError(err)

	writeBaseline(t, fs, baselineFileName, baseline)
	return baseline
}

func writeBaseline(t *testing.T, fs afero.Fs, baselineFileName string, baseline map[string]string) {
	assert := require.New(t)
	blob, err := json.MarshalIndent(baseline, "", "  ")
	assert.NoError(err)
	assert.NoError(afero.WriteFile(fs, baselineFileName, blob, 0o644))
}

func writeFiles(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	assert := require.New(t)
	assert.NoError(fs.MkdirAll(root, 0o755))
	for name, content := range files {
		fileName := filepath.Join(root, filepath.FromSlash(name))
		assert.NoError(fs.MkdirAll(filepath.Dir(fileName), 0o755))
		assert.NoError(afero.WriteFile(fs, fileName, []byte(content), 0o644))
	}
}

// failingFs fails to open names listed in fail
type failingFs struct {
	afero.Fs
	fail []string
}

func (f *failingFs) failing(name string) bool {
	for _, fail := range f.fail {
		if filepath.Clean(name) == filepath.Clean(fail) {
			return true
		}
	}
	return false
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if f.failing(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.failing(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

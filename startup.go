package verity

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/cloudcopper/verity/adapters/repository"
	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/infra"
	"github.com/cloudcopper/verity/infra/config"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/ports"
)

// LoadConfig reads config.ConfigFileName from layered filesystem.
// Layered filesystem consists of next layers:
//   - ./ of ${VERITY_ROOT} (optional)
//   - ./ of current working directory
//   - fs given as parameter (cmdFS), usually embed defaults
func LoadConfig(log ports.Logger, cmdFS fs.ReadFileFS) (*config.Config, error) {
	layers, err := infra.NewLayerFileSystem(config.TopRootFileSystemPath, os.Getwd, cmdFS)
	if err != nil {
		log.Error("unable to create layered filesystem!!!", slog.Any("err", err))
		return nil, lib.NewErrorCode(err, errors.RetLoadConfigError)
	}

	cfg, err := config.LoadConfig(log, layers, config.ConfigFileName)
	if err != nil {
		log.Error("unable to load config!!!", slog.Any("err", err), slog.String("fileName", config.ConfigFileName))
		return nil, lib.NewErrorCode(err, errors.RetLoadConfigError)
	}
	return cfg, nil
}

// The openHistory opens and migrates history database.
// The database is in memory, when fileName is empty.
func openHistory(log ports.Logger, fileName string) (*repository.RunRepository, func(), error) {
	driver := infra.DriverSqlite
	source := infra.SourceSqlite(fileName)
	db, closeDb, err := infra.NewDatabase(log, driver, source)
	if err != nil {
		log.Error("unable to create database", slog.Any("err", err), slog.String("driver", driver), slog.String("source", source))
		return nil, nil, lib.NewErrorCode(err, errors.RetCreateDatabaseError)
	}
	if err := infra.MigrateDatabase(db); err != nil {
		closeDb()
		log.Error("unable sync database", slog.Any("err", err), slog.String("driver", driver), slog.String("source", source))
		return nil, nil, lib.NewErrorCode(err, errors.RetMigrateDatabaseError)
	}
	runRepository, err := repository.NewRunRepository(db)
	if err != nil {
		closeDb()
		log.Error("unable create run repository", slog.Any("err", err))
		return nil, nil, lib.NewErrorCode(err, errors.RetCreateRunRepositoryError)
	}
	return runRepository, closeDb, nil
}

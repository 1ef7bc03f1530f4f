package infra

import (
	"database/sql"
	"fmt"

	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/ports"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // purego sqlite3 driver
)

const (
	DriverSqlite         = "sqlite"
	SourceSqliteInMemory = "file::memory:?cache=shared&_pragma=foreign_keys(1)"
)

// SourceSqlite returns data source of sqlite db file,
// or of in memory db, when the file name is empty
func SourceSqlite(fileName string) string {
	if fileName == "" {
		return SourceSqliteInMemory
	}
	return fmt.Sprintf("file:%v?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", fileName)
}

func NewDatabase(log ports.Logger, driver, source string) (ports.DB, func(), error) {
	sqlDB, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, err
	}

	dbLogger := slogGorm.New(slogGorm.WithHandler(log.Handler()))
	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return db, func() { sqlDB.Close() }, nil
}

// MigrateDatabase creates or updates history tables
func MigrateDatabase(db ports.DB) error {
	return db.AutoMigrate(new(models.Run), new(models.Finding))
}

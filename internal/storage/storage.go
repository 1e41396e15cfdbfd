// Package storage opens the configured database and builds the
// pagesearch.Store the application searches through.
package storage

import (
	"fmt"
	"time"

	"github.com/Alp4ka/pagesearch"
	"github.com/Alp4ka/pagesearch/internal/config"
	"github.com/Alp4ka/pagesearch/internal/logger"
	"github.com/Alp4ka/pagesearch/internal/metrics"
	"github.com/Alp4ka/pagesearch/sqlxstore"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqlxDriverNames maps GORM drivers to the names sqlx uses to pick a bindvar
// style.
var sqlxDriverNames = map[string]string{
	"sqlite":   "sqlite3",
	"mysql":    "mysql",
	"postgres": "postgres",
}

// Open connects to the database described by cfg.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	slow, err := parseThreshold(cfg.SlowQueryThreshold)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(log, slow),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	return db, nil
}

// Dialector returns the GORM dialector for driver.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}
}

// NewStore builds the store selected by cfg.Engine on top of db. The sqlx
// engine shares db's connection pool.
func NewStore(db *gorm.DB, driver string, cfg config.StorageConfig) (pagesearch.Store, error) {
	var store pagesearch.Store

	switch cfg.Engine {
	case "gorm":
		store = pagesearch.NewGORMStore(db)
	case "sqlx":
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}

		driverName, ok := sqlxDriverNames[driver]
		if !ok {
			return nil, fmt.Errorf("unsupported database driver '%s'", driver)
		}

		store = sqlxstore.New(sqlx.NewDb(sqlDB, driverName))
	default:
		return nil, fmt.Errorf("unsupported storage engine '%s'", cfg.Engine)
	}

	if cfg.Metrics {
		store = metrics.Instrument(store)
	}

	return store, nil
}

func parseThreshold(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid slow query threshold '%s': %w", s, err)
	}

	return d, nil
}

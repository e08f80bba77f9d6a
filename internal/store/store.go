// Package store owns the embedded audit store: opening the durable medium
// and driving the versioned schema migrations that must complete before any
// collection is read or written.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/db/migrations"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
)

// Open connects to the configured medium and runs all pending migrations in
// version order. Opening is idempotent; any failure is surfaced as
// StoreUnavailable since nothing can proceed without the store.
func Open(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := gormlogger.Default.LogMode(gormlogger.Silent)
	if cfg.LogQueries {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Source)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, internal.ErrStoreUnavailable.WithCause(fmt.Errorf("create db dir: %w", err))
		}
		dialector = sqlite.Open(cfg.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, internal.ErrStoreUnavailable.WithCause(fmt.Errorf("open store: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, internal.ErrStoreUnavailable.WithCause(fmt.Errorf("unwrap sql db: %w", err))
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 1
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	if cfg.Driver != "postgres" {
		// single-writer embedded medium; WAL keeps readers unblocked
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
		_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	}

	if err := Migrate(db, cfg.Driver); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies every pending schema step, oldest first. Steps already
// recorded in the version table are skipped, so re-running is safe. A failure
// aborts startup entirely rather than leaving a partially migrated store in
// service.
func Migrate(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return internal.ErrStoreUnavailable.WithCause(err)
	}

	dialect := "sqlite3"
	if driver == "postgres" {
		dialect = "postgres"
	}

	goose.SetBaseFS(migrations.Embed)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(dialect); err != nil {
		return internal.ErrStoreUnavailable.WithCause(fmt.Errorf("set dialect: %w", err))
	}

	if err := goose.Up(sqlDB, "."); err != nil {
		return internal.ErrStoreUnavailable.WithCause(fmt.Errorf("run migrations: %w", err))
	}

	return nil
}

package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ConnectPostgres opens a PostgreSQL connection via GORM and verifies connectivity.
func ConnectPostgres(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	return connect(ctx, postgres.Open(dsn))
}

// ConnectSQLite opens a SQLite database file (or ":memory:") with foreign keys enabled.
func ConnectSQLite(ctx context.Context, path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	dsn := path
	if !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}
	return connect(ctx, sqlite.Open(dsn))
}

func connect(ctx context.Context, dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Options selects the storage backend.
type Options struct {
	Driver      string
	PostgresDSN string
	SQLitePath  string
}

// Open returns the configured database plus a cleanup function. The memory driver yields a nil DB.
// A postgres driver without a reachable DSN logs and falls back to memory; sqlite failures are fatal.
func Open(ctx context.Context, opts Options, log *slog.Logger) (*gorm.DB, func(), error) {
	if log == nil {
		log = slog.Default()
	}
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMemory:
		log.Info("using in-memory repositories")
		return nil, func() {}, nil
	case DriverPostgres:
		if strings.TrimSpace(opts.PostgresDSN) == "" {
			log.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
			return nil, func() {}, nil
		}
		db, err := ConnectPostgres(ctx, opts.PostgresDSN)
		if err != nil {
			log.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
			return nil, func() {}, nil
		}
		log.Info("postgres connection established")
		return db, closer(db), nil
	case DriverSQLite:
		db, err := ConnectSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, func() {}, fmt.Errorf("open sqlite %q: %w", opts.SQLitePath, err)
		}
		log.Info("sqlite database opened", slog.String("path", opts.SQLitePath))
		return db, closer(db), nil
	default:
		return nil, func() {}, fmt.Errorf("unknown database driver %q", opts.Driver)
	}
}

func closer(db *gorm.DB) func() {
	sqlDB, err := db.DB()
	if err != nil {
		return func() {}
	}
	return func() { _ = sqlDB.Close() }
}

package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/wellness/internal/config"
	"github.com/garrettladley/wellness/internal/migrations/postgres"
	"github.com/garrettladley/wellness/internal/xslog"
)

// Open connects to the configured driver and applies pending migrations.
func Open(ctx context.Context, cfg config.Storage) (Store, error) {
	logger := xslog.FromContext(ctx)

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		applied, err := postgres.Apply(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to apply postgres migrations: %w", err)
		}
		for _, name := range applied {
			logger.InfoContext(ctx, "applied migration", xslog.Driver(string(cfg.Driver)), xslog.File(name))
		}
		return NewPostgresStore(pool), nil

	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil

	case config.DriverMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

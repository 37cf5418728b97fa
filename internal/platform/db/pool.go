// Package db owns the chart store's connection pool, schema migrations, and
// first-boot reference data.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/icuchart/icuchart/internal/config"
)

// pingTimeout bounds the startup reachability check so a wrong DATABASE_URL
// fails fast instead of hanging the boot.
const pingTimeout = 5 * time.Second

// NewPool builds the shared connection pool from the loaded configuration
// and verifies the database is reachable before returning it. Idle
// connections above the floor are recycled; the pool's own health checks
// keep the floor warm between requests.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pc.MaxConns = cfg.DBMaxConns
	pc.MinConns = cfg.DBMinConns
	pc.MaxConnIdleTime = 5 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

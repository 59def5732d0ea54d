package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// maxPoolConns caps the pool; the preferences table sees a handful of
// small upserts per user action.
const maxPoolConns = 4

// NewPostgresPool parses databaseURL, opens a small pgxpool and pings it.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	if cfg.MaxConns > maxPoolConns {
		cfg.MaxConns = maxPoolConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping %s: %w", cfg.ConnConfig.Host, err)
	}

	return pool, nil
}

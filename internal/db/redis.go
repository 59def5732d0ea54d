// Package db provides connection helpers for the preference backends.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the startup ping of every backend.
const connectTimeout = 5 * time.Second

// NewRedisClient parses redisURL, connects and pings. The client is closed
// again when the ping fails.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return rdb, nil
}

package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const preferencesSchema = `
	CREATE TABLE IF NOT EXISTS preferences (
		bucket     TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      JSONB       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (bucket, key)
	)`

// PostgresStore persists preferences as JSONB values in a single
// preferences table keyed by (bucket, key).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a PostgresStore. Call EnsureSchema once at startup.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the preferences table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, preferencesSchema); err != nil {
		return fmt.Errorf("ensure preferences schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetString(ctx context.Context, bucket, key string) (string, bool, error) {
	var v string
	found, err := s.get(ctx, bucket, key, "string", &v)
	return v, found, err
}

func (s *PostgresStore) PutString(ctx context.Context, bucket, key, value string) error {
	return s.put(ctx, bucket, key, value)
}

func (s *PostgresStore) GetBool(ctx context.Context, bucket, key string) (bool, bool, error) {
	var v bool
	found, err := s.get(ctx, bucket, key, "bool", &v)
	return v, found, err
}

func (s *PostgresStore) PutBool(ctx context.Context, bucket, key string, value bool) error {
	return s.put(ctx, bucket, key, value)
}

func (s *PostgresStore) GetStringSet(ctx context.Context, bucket, key string) ([]string, error) {
	var v []string
	if _, err := s.get(ctx, bucket, key, "string set", &v); err != nil {
		return nil, err
	}
	if v == nil {
		v = []string{}
	}
	sort.Strings(v)
	return v, nil
}

func (s *PostgresStore) PutStringSet(ctx context.Context, bucket, key string, values []string) error {
	return s.put(ctx, bucket, key, dedupSorted(values))
}

func (s *PostgresStore) Remove(ctx context.Context, bucket string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM preferences WHERE bucket = $1 AND key = ANY($2)`,
		bucket, keys,
	)
	if err != nil {
		return fmt.Errorf("delete preferences %s: %w", bucket, err)
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, bucket, key, want string, dst any) (bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM preferences WHERE bucket = $1 AND key = $2`,
		bucket, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select preference %s/%s: %w", bucket, key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, &TypeError{Bucket: bucket, Key: key, Want: want}
	}
	return true, nil
}

func (s *PostgresStore) put(ctx context.Context, bucket, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode preference %s/%s: %w", bucket, key, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO preferences (bucket, key, value)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (bucket, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		bucket, key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("upsert preference %s/%s: %w", bucket, key, err)
	}
	return nil
}

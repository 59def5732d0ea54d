package db_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"hrml/recruiter-service/internal/db"
)

func TestNewRedisClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := db.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("NewRedisClient() unexpected error: %v", err)
	}
	defer rdb.Close()

	if err := rdb.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Errorf("SET after connect failed: %v", err)
	}
}

func TestNewRedisClient_BadURL(t *testing.T) {
	if _, err := db.NewRedisClient(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisClient(\"not-a-url\") expected error, got nil")
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := db.NewRedisClient(context.Background(), "redis://"+addr); err == nil {
		t.Error("NewRedisClient() against a closed server expected error, got nil")
	}
}

func TestNewPostgresPool_BadURL(t *testing.T) {
	if _, err := db.NewPostgresPool(context.Background(), "postgres://%zz"); err == nil {
		t.Error("NewPostgresPool() with a malformed URL expected error, got nil")
	}
}

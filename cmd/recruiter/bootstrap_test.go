package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestBootstrap_MemoryBackendWarns(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("REDIS_URL", "")
	logs := captureLog(t)

	d, err := bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap() unexpected error: %v", err)
	}
	defer d.Close()

	if !strings.Contains(logs.String(), "not durable") {
		t.Errorf("expected a durability warning, got logs:\n%s", logs.String())
	}
}

func TestBootstrap_RedisBackendDoesNotWarn(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	logs := captureLog(t)

	d, err := bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap() unexpected error: %v", err)
	}
	defer d.Close()

	if strings.Contains(logs.String(), "not durable") {
		t.Errorf("unexpected durability warning for redis:\n%s", logs.String())
	}
}

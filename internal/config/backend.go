package config

import "fmt"

// Backend selects where favorite flags and session preferences are persisted.
type Backend string

const (
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory" // not durable; tests and demos only
)

// ParseBackend converts a raw string to a Backend, returning an error for
// unknown values.
func ParseBackend(s string) (Backend, error) {
	b := Backend(s)
	switch b {
	case BackendRedis, BackendPostgres, BackendMemory:
		return b, nil
	}
	return "", fmt.Errorf("unknown store backend %q", s)
}

// IsDurable reports whether values written through b survive a restart.
func IsDurable(b Backend) bool { return b != BackendMemory }

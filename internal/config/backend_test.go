package config_test

import (
	"testing"

	"hrml/recruiter-service/internal/config"
)

// ── ParseBackend ───────────────────────────────────────────────────────────

func TestParseBackend_ValidValues(t *testing.T) {
	valid := []string{"redis", "postgres", "memory"}
	for _, s := range valid {
		got, err := config.ParseBackend(s)
		if err != nil {
			t.Errorf("ParseBackend(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseBackend(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseBackend_InvalidValue(t *testing.T) {
	_, err := config.ParseBackend("sqlite")
	if err == nil {
		t.Error("ParseBackend(\"sqlite\") expected error, got nil")
	}
}

func TestParseBackend_EmptyString(t *testing.T) {
	_, err := config.ParseBackend("")
	if err == nil {
		t.Error("ParseBackend(\"\") expected error, got nil")
	}
}

// ParseBackend is case-sensitive: uppercase variants are not valid.
func TestParseBackend_CaseSensitive(t *testing.T) {
	for _, s := range []string{"REDIS", "Postgres", "MEMORY"} {
		if _, err := config.ParseBackend(s); err == nil {
			t.Errorf("ParseBackend(%q) should reject non-lowercase value, got nil error", s)
		}
	}
}

// ParseBackend must reject whitespace-padded strings.
func TestParseBackend_WithWhitespace(t *testing.T) {
	for _, s := range []string{" redis", "redis ", " redis "} {
		if _, err := config.ParseBackend(s); err == nil {
			t.Errorf("ParseBackend(%q) should reject padded value, got nil error", s)
		}
	}
}

// ── IsDurable ──────────────────────────────────────────────────────────────

func TestIsDurable(t *testing.T) {
	if config.IsDurable(config.BackendMemory) {
		t.Error("IsDurable(memory) should return false")
	}
	for _, b := range []config.Backend{config.BackendRedis, config.BackendPostgres} {
		if !config.IsDurable(b) {
			t.Errorf("IsDurable(%s) should return true", b)
		}
	}
}

// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultAPIURL is the HRML platform the recruiter app talks to.
const DefaultAPIURL = "https://hrml-t4-system-p4wm.onrender.com"

// Config holds all runtime configuration for the recruiter service.
type Config struct {
	Port            string
	APIBaseURL      string
	HTTPTimeout     time.Duration
	Backend         Backend
	RedisURL        string // optional unless Backend == BackendRedis; enables favorite events
	RedisKeyPrefix  string
	DatabaseURL     string
	DownloadDir     string
	RefreshInterval time.Duration // 0 disables the background refresh
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	backend := BackendRedis
	if s := os.Getenv("STORE_BACKEND"); s != "" {
		b, err := ParseBackend(s)
		if err != nil {
			return nil, err
		}
		backend = b
	}

	redisURL := os.Getenv("REDIS_URL")
	if backend == BackendRedis && redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if backend == BackendPostgres && dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	timeout := 30
	if s := os.Getenv("HTTP_TIMEOUT_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		timeout = v
	}

	refresh := 15
	if s := os.Getenv("REFRESH_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("REFRESH_INTERVAL_MINUTES must be a non-negative integer, got %q", s)
		}
		refresh = v
	}

	return &Config{
		Port:            getEnv("RECRUITER_PORT", "8083"),
		APIBaseURL:      getEnv("HRML_API_URL", DefaultAPIURL),
		HTTPTimeout:     time.Duration(timeout) * time.Second,
		Backend:         backend,
		RedisURL:        redisURL,
		RedisKeyPrefix:  getEnv("REDIS_KEY_PREFIX", "hrml"),
		DatabaseURL:     dbURL,
		DownloadDir:     getEnv("DOWNLOAD_DIR", "downloads"),
		RefreshInterval: time.Duration(refresh) * time.Minute,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"hrml/recruiter-service/internal/config"
	"hrml/recruiter-service/internal/db"
	"hrml/recruiter-service/internal/events"
	"hrml/recruiter-service/internal/favorites"
	"hrml/recruiter-service/internal/hrml"
	"hrml/recruiter-service/internal/prefs"
	"hrml/recruiter-service/internal/recruiter"
	"hrml/recruiter-service/internal/session"
)

// deps is everything a command needs, built from the environment.
type deps struct {
	cfg      *config.Config
	svc      *recruiter.Service
	sessions *session.Manager
	closers  []func()
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func bootstrap(ctx context.Context) (*deps, error) {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	d := &deps{cfg: cfg}

	// ── Redis ────────────────────────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		log.Println("[recruiter] Connecting to Redis…")
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		d.closers = append(d.closers, func() { _ = rdb.Close() })
		log.Println("[recruiter] Redis connected ✓")
	}

	// ── Preference store ─────────────────────────────────────────────────────
	var store prefs.Store
	switch cfg.Backend {
	case config.BackendRedis:
		store = prefs.NewRedisStore(rdb, cfg.RedisKeyPrefix)
	case config.BackendPostgres:
		log.Println("[recruiter] Connecting to PostgreSQL…")
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		d.closers = append(d.closers, pool.Close)
		pg := prefs.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			d.Close()
			return nil, err
		}
		store = pg
		log.Println("[recruiter] PostgreSQL connected ✓")
	case config.BackendMemory:
		store = prefs.NewMemoryStore()
	}
	if !config.IsDurable(cfg.Backend) {
		log.Printf("[recruiter] Store backend %q is not durable; favorites will not survive a restart", cfg.Backend)
	}

	// ── Favorites ────────────────────────────────────────────────────────────
	jobs := favorites.NewJobFavorites(store)
	if err := jobs.Initialize(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("load favorite jobs: %w", err)
	}
	applicants := favorites.NewApplicantFavorites(store)

	client := hrml.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	d.svc = recruiter.NewService(client, jobs, applicants, cfg.DownloadDir)
	d.sessions = session.NewManager(client, store)

	// ── Events ───────────────────────────────────────────────────────────────
	if rdb != nil {
		pub := events.NewPublisher(rdb)
		d.closers = append(d.closers, jobs.Subscribe(pub.FavoriteJobsChanged))
		d.svc.WithNotifier(pub)
	}

	return d, nil
}

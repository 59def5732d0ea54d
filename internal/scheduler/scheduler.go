// Package scheduler wires up the cron job that periodically refreshes the job
// board and warms the applicant cache of favorite jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher is the unit of work run on every tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string // cron spec, e.g. "@every 15m"

	running sync.Mutex // a slow refresh is never overlapped by the next tick
	wg      sync.WaitGroup
}

// New creates a Scheduler that fires every interval.
func New(refresher Refresher, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		refresher: refresher,
		spec:      fmt.Sprintf("@every %s", interval),
	}
}

// Spec returns the cron spec the scheduler registers.
func (s *Scheduler) Spec() string { return s.spec }

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the cache is warm without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runRefresh(ctx)
	}()

	return nil
}

// Stop halts the cron and waits for running refreshes to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	if !s.running.TryLock() {
		log.Println("[scheduler] Previous refresh still running, skipping tick")
		return
	}
	defer s.running.Unlock()

	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	log.Println("[scheduler] Refresh started")
	if err := s.refresher.Refresh(ctx); err != nil {
		log.Printf("[scheduler] Refresh error: %v", err)
		return
	}
	log.Printf("[scheduler] Refresh complete in %s", time.Since(start).Round(time.Millisecond))
}

package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"hrml/recruiter-service/internal/scheduler"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
	ran   chan struct{}
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	select {
	case r.ran <- struct{}{}:
	default:
	}
	return r.err
}

func TestNew_Spec(t *testing.T) {
	s := scheduler.New(&countingRefresher{}, 15*time.Minute)
	if got, want := s.Spec(), "@every 15m0s"; got != want {
		t.Errorf("Spec() = %q, want %q", got, want)
	}
}

// Start runs one refresh right away without waiting for the first tick.
func TestStart_RunsImmediately(t *testing.T) {
	r := &countingRefresher{ran: make(chan struct{}, 1)}
	s := scheduler.New(r, time.Hour)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer s.Stop()

	select {
	case <-r.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not run on start")
	}
}

// A failing refresh is logged, not fatal; the scheduler keeps running.
func TestStart_RefreshErrorIsNotFatal(t *testing.T) {
	r := &countingRefresher{ran: make(chan struct{}, 1), err: errors.New("upstream down")}
	s := scheduler.New(r, time.Hour)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	<-r.ran
	s.Stop()
	if r.calls.Load() != 1 {
		t.Errorf("refresh ran %d times, want 1", r.calls.Load())
	}
}

// A cancelled context skips the refresh entirely.
func TestStart_CancelledContext(t *testing.T) {
	r := &countingRefresher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := scheduler.New(r, time.Hour)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	s.Stop()
	if r.calls.Load() != 0 {
		t.Errorf("refresh ran %d times with a cancelled context, want 0", r.calls.Load())
	}
}

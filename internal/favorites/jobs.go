// Package favorites owns the recruiter's favorite state: the favorite-job set,
// the (job, applicant) favorite relation and the per-job applicant cache.
//
// Both stores keep an in-memory view and write through to a prefs.Store.
// Every map has its own mutex, so a store may be shared between the HTTP
// handlers and the background refresher.
package favorites

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"hrml/recruiter-service/internal/prefs"
)

// ─── Favorite jobs ───────────────────────────────────────────────────────────

// JobFavorites is the favorite-job set. Call Initialize before use.
type JobFavorites struct {
	store prefs.Store

	mu  sync.RWMutex
	ids map[string]struct{}

	// writeMu is held across a whole mutation: change, notify, write-through.
	// Subscribers and the store therefore see snapshots in mutation order.
	writeMu sync.Mutex

	subMu sync.Mutex
	subs  map[string]func([]string)
}

// NewJobFavorites returns an empty set backed by store.
func NewJobFavorites(store prefs.Store) *JobFavorites {
	return &JobFavorites{
		store: store,
		ids:   make(map[string]struct{}),
		subs:  make(map[string]func([]string)),
	}
}

// Initialize loads the persisted set into memory. Calling it again merges the
// persisted ids into the current set; ids added in memory are never dropped.
// Subscribers receive the resulting set.
func (f *JobFavorites) Initialize(ctx context.Context) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	persisted, err := f.store.GetStringSet(ctx, prefs.BucketJobs, prefs.KeyFavoriteJobs)
	if err != nil {
		return err
	}

	f.mu.Lock()
	for _, id := range persisted {
		f.ids[id] = struct{}{}
	}
	snapshot := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snapshot)
	return nil
}

// SetFavorite adds or removes jobID, notifies subscribers with the full set
// and writes the whole set through. A failed write is logged and otherwise
// ignored; the in-memory set stays authoritative for this process.
func (f *JobFavorites) SetFavorite(ctx context.Context, jobID string, isFavorite bool) {
	f.mutate(ctx, jobID, func(bool) bool { return isFavorite })
}

// Toggle flips jobID and returns the new state. The read and the write are
// one step, so concurrent toggles never collapse into one.
func (f *JobFavorites) Toggle(ctx context.Context, jobID string) bool {
	return f.mutate(ctx, jobID, func(current bool) bool { return !current })
}

// mutate sets jobID to next(current). Subscribers must not mutate f.
func (f *JobFavorites) mutate(ctx context.Context, jobID string, next func(current bool) bool) bool {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	f.mu.Lock()
	_, current := f.ids[jobID]
	on := next(current)
	if on {
		f.ids[jobID] = struct{}{}
	} else {
		delete(f.ids, jobID)
	}
	snapshot := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snapshot)
	f.persist(ctx, snapshot)
	return on
}

// IsFavorite is an in-memory lookup.
func (f *JobFavorites) IsFavorite(jobID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[jobID]
	return ok
}

// FavoriteIDs returns a sorted snapshot of the set.
func (f *JobFavorites) FavoriteIDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshotLocked()
}

// Subscribe registers fn to receive the complete set after every change.
// fn runs synchronously on the mutating goroutine, in mutation order; it may
// read from f but must not change it. The returned func removes
// the subscription and is safe to call more than once.
func (f *JobFavorites) Subscribe(fn func(ids []string)) (unsubscribe func()) {
	id := uuid.NewString()
	f.subMu.Lock()
	f.subs[id] = fn
	f.subMu.Unlock()

	return func() {
		f.subMu.Lock()
		delete(f.subs, id)
		f.subMu.Unlock()
	}
}

func (f *JobFavorites) notify(snapshot []string) {
	f.subMu.Lock()
	fns := make([]func([]string), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.subMu.Unlock()

	for _, fn := range fns {
		fn(append([]string(nil), snapshot...))
	}
}

// persist writes snapshot through. Callers hold writeMu.
func (f *JobFavorites) persist(ctx context.Context, snapshot []string) {
	if err := f.store.PutStringSet(ctx, prefs.BucketJobs, prefs.KeyFavoriteJobs, snapshot); err != nil {
		slog.Warn("persist favorite_jobs failed", "err", err)
	}
}

func (f *JobFavorites) snapshotLocked() []string {
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

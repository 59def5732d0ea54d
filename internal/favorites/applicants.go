package favorites

import (
	"context"
	"log/slog"
	"sync"

	"hrml/recruiter-service/internal/model"
	"hrml/recruiter-service/internal/prefs"
)

const (
	// UnknownName is shown for a favorite applicant with no cached details.
	UnknownName = "Unknown"

	// DefaultLastJobID is returned when no job was viewed before.
	DefaultLastJobID = "defaultJobId"
)

// PersistedKey is the preference key of one applicant's flag within one job.
func PersistedKey(jobID, applicantID string) string {
	return jobID + "_" + applicantID
}

// ─── Favorite applicants ─────────────────────────────────────────────────────

type pairKey struct {
	jobID, applicantID string
}

// ApplicantFavorites tracks favorite applicants per job.
//
// Favorite state lives in two places: an in-memory relation holding the
// writes made by this process, and the persisted per-pair flag. The listing
// treats a pair as favorite when either says so; single lookups read the
// persisted flag only. The two are written independently with no rollback.
type ApplicantFavorites struct {
	store prefs.Store

	// writeMu orders flag writes; ToggleFavorite holds it across its read.
	writeMu sync.Mutex

	relMu    sync.Mutex
	relation map[pairKey]bool
	order    []pairKey // first-insertion order of relation keys

	cacheMu sync.RWMutex
	cache   map[string]map[string]model.Applicant
}

// NewApplicantFavorites returns an empty relation and cache backed by store.
func NewApplicantFavorites(store prefs.Store) *ApplicantFavorites {
	return &ApplicantFavorites{
		store:    store,
		relation: make(map[pairKey]bool),
		cache:    make(map[string]map[string]model.Applicant),
	}
}

// Cache stores a display snapshot of applicant under jobID, replacing any
// previous one. The cache is never evicted.
func (a *ApplicantFavorites) Cache(jobID string, applicant model.Applicant) {
	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()
	bucket, ok := a.cache[jobID]
	if !ok {
		bucket = make(map[string]model.Applicant)
		a.cache[jobID] = bucket
	}
	bucket[applicant.ID] = applicant
}

// Cached returns the cached snapshot for one applicant.
func (a *ApplicantFavorites) Cached(jobID, applicantID string) (model.Applicant, bool) {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()
	ap, ok := a.cache[jobID][applicantID]
	return ap, ok
}

// ClearCache drops the cached applicants of jobID. Favorite flags are untouched.
func (a *ApplicantFavorites) ClearCache(jobID string) {
	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()
	delete(a.cache, jobID)
}

// SetFavorite records the flag in memory and then persists it. The in-memory
// write stands even when persisting fails; that error is returned.
func (a *ApplicantFavorites) SetFavorite(ctx context.Context, jobID, applicantID string, isFavorite bool) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	return a.setLocked(ctx, jobID, applicantID, isFavorite)
}

// ToggleFavorite flips the persisted flag and returns the new state.
// Concurrent toggles of one pair each see the other's result.
func (a *ApplicantFavorites) ToggleFavorite(ctx context.Context, jobID, applicantID string) (bool, error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	next := !a.IsFavorite(ctx, jobID, applicantID)
	return next, a.setLocked(ctx, jobID, applicantID, next)
}

func (a *ApplicantFavorites) setLocked(ctx context.Context, jobID, applicantID string, isFavorite bool) error {
	k := pairKey{jobID: jobID, applicantID: applicantID}
	a.relMu.Lock()
	if _, seen := a.relation[k]; !seen {
		a.order = append(a.order, k)
	}
	a.relation[k] = isFavorite
	a.relMu.Unlock()

	return a.store.PutBool(ctx, prefs.BucketApplicants, PersistedKey(jobID, applicantID), isFavorite)
}

// IsFavorite reads the persisted flag only. Absent keys and read errors
// both report false.
func (a *ApplicantFavorites) IsFavorite(ctx context.Context, jobID, applicantID string) bool {
	v, _, err := a.store.GetBool(ctx, prefs.BucketApplicants, PersistedKey(jobID, applicantID))
	if err != nil {
		slog.Warn("read applicant favorite failed", "jobId", jobID, "applicantId", applicantID, "err", err)
		return false
	}
	return v
}

// FavoritesForJob lists the favorite applicants of jobID that this process
// has touched through SetFavorite, in the order they were first set.
// A pair is listed when the in-memory flag or the persisted flag is true.
// Details come from the cache; uncached applicants get UnknownName and a
// zero score. Applicants favorited only in an earlier run are not listed.
func (a *ApplicantFavorites) FavoritesForJob(ctx context.Context, jobID string) []model.Applicant {
	type entry struct {
		applicantID string
		inMemory    bool
	}
	a.relMu.Lock()
	entries := make([]entry, 0)
	for _, k := range a.order {
		if k.jobID == jobID {
			entries = append(entries, entry{applicantID: k.applicantID, inMemory: a.relation[k]})
		}
	}
	a.relMu.Unlock()

	out := make([]model.Applicant, 0, len(entries))
	for _, e := range entries {
		if !e.inMemory && !a.IsFavorite(ctx, jobID, e.applicantID) {
			continue
		}
		ap, ok := a.Cached(jobID, e.applicantID)
		if !ok {
			ap = model.Applicant{ID: e.applicantID, Name: UnknownName}
		}
		ap.IsFavorite = true
		out = append(out, ap)
	}
	return out
}

// UpdateWithFavorites returns copies of applicants with the persisted flag
// applied. Favorites are re-cached under jobID; non-favorites are not.
func (a *ApplicantFavorites) UpdateWithFavorites(ctx context.Context, applicants []model.Applicant, jobID string) []model.Applicant {
	out := make([]model.Applicant, len(applicants))
	for i, ap := range applicants {
		ap.IsFavorite = a.IsFavorite(ctx, jobID, ap.ID)
		if ap.IsFavorite {
			a.Cache(jobID, ap)
		}
		out[i] = ap
	}
	return out
}

// ─── Last viewed job ─────────────────────────────────────────────────────────

// LastJobID returns the last job the recruiter opened, or DefaultLastJobID.
func (a *ApplicantFavorites) LastJobID(ctx context.Context) string {
	v, found, err := a.store.GetString(ctx, prefs.BucketApplicants, prefs.KeyLastJobID)
	if err != nil {
		slog.Warn("read lastJobId failed", "err", err)
	}
	if !found || v == "" {
		return DefaultLastJobID
	}
	return v
}

// SaveLastJobID stores jobID when it differs from the stored value and
// reports whether it did.
func (a *ApplicantFavorites) SaveLastJobID(ctx context.Context, jobID string) (bool, error) {
	current, found, err := a.store.GetString(ctx, prefs.BucketApplicants, prefs.KeyLastJobID)
	if err != nil {
		return false, err
	}
	if found && current == jobID {
		return false, nil
	}
	if err := a.store.PutString(ctx, prefs.BucketApplicants, prefs.KeyLastJobID, jobID); err != nil {
		return false, err
	}
	return true, nil
}

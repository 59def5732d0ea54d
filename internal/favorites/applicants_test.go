package favorites_test

import (
	"context"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrml/recruiter-service/internal/favorites"
	"hrml/recruiter-service/internal/model"
	"hrml/recruiter-service/internal/prefs"
)

func TestPersistedKey(t *testing.T) {
	assert.Equal(t, "j1_u1", favorites.PersistedKey("j1", "u1"))
}

// ── SetFavorite / IsFavorite ───────────────────────────────────────────────

func TestApplicantFavorites_SetThenIsFavorite(t *testing.T) {
	ctx := context.Background()
	a := favorites.NewApplicantFavorites(prefs.NewMemoryStore())

	require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))
	assert.True(t, a.IsFavorite(ctx, "j1", "u1"))
	assert.False(t, a.IsFavorite(ctx, "j2", "u1"), "flag is scoped to the job")
	assert.False(t, a.IsFavorite(ctx, "j1", "u2"))
}

func TestApplicantFavorites_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()

	first := favorites.NewApplicantFavorites(store)
	require.NoError(t, first.SetFavorite(ctx, "j1", "u1", true))

	second := favorites.NewApplicantFavorites(store)
	assert.True(t, second.IsFavorite(ctx, "j1", "u1"))
}

func TestApplicantFavorites_PersistedUnderCompoundKey(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	a := favorites.NewApplicantFavorites(store)
	require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))

	v, found, err := store.GetBool(ctx, prefs.BucketApplicants, "j1_u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, v)
}

// IsFavorite reads storage only, so a failed persist is visible there while
// the in-memory relation still lists the applicant.
func TestApplicantFavorites_NoRollbackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	a := favorites.NewApplicantFavorites(store)
	store.failWrites = true

	err := a.SetFavorite(ctx, "j1", "u1", true)
	assert.ErrorIs(t, err, errStoreDown)
	assert.False(t, a.IsFavorite(ctx, "j1", "u1"))

	got := a.FavoritesForJob(ctx, "j1")
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)
}

func TestApplicantFavorites_ReadErrorIsFalse(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	a := favorites.NewApplicantFavorites(store)
	require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))
	store.failReads = true
	assert.False(t, a.IsFavorite(ctx, "j1", "u1"))
}

func TestApplicantFavorites_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	a := favorites.NewApplicantFavorites(prefs.NewMemoryStore())

	on, err := a.ToggleFavorite(ctx, "j1", "u1")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := a.ToggleFavorite(ctx, "j1", "u1")
	require.NoError(t, err)
	assert.False(t, off)
	assert.False(t, a.IsFavorite(ctx, "j1", "u1"))
}

// ── FavoritesForJob ────────────────────────────────────────────────────────

func TestFavoritesForJob(t *testing.T) {
	ctx := context.Background()
	jane := model.Applicant{ID: "u1", Name: "Jane", MatchingScore: 87.5}

	tests := []struct {
		name  string
		setup func(t *testing.T, a *favorites.ApplicantFavorites, store prefs.Store)
		want  []model.Applicant
	}{
		{
			name: "cached favorite uses cached details",
			setup: func(t *testing.T, a *favorites.ApplicantFavorites, _ prefs.Store) {
				a.Cache("j1", jane)
				require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))
			},
			want: []model.Applicant{{ID: "u1", Name: "Jane", MatchingScore: 87.5, IsFavorite: true}},
		},
		{
			name: "uncached favorite gets placeholder",
			setup: func(t *testing.T, a *favorites.ApplicantFavorites, _ prefs.Store) {
				require.NoError(t, a.SetFavorite(ctx, "j1", "u9", true))
			},
			want: []model.Applicant{{ID: "u9", Name: favorites.UnknownName, IsFavorite: true}},
		},
		{
			name: "persisted true wins over in-memory false",
			setup: func(t *testing.T, a *favorites.ApplicantFavorites, store prefs.Store) {
				a.Cache("j1", jane)
				require.NoError(t, a.SetFavorite(ctx, "j1", "u1", false))
				require.NoError(t, store.PutBool(ctx, prefs.BucketApplicants, "j1_u1", true))
			},
			want: []model.Applicant{{ID: "u1", Name: "Jane", MatchingScore: 87.5, IsFavorite: true}},
		},
		{
			name: "unfavorited pair is dropped",
			setup: func(t *testing.T, a *favorites.ApplicantFavorites, _ prefs.Store) {
				a.Cache("j1", jane)
				require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))
				require.NoError(t, a.SetFavorite(ctx, "j1", "u1", false))
			},
			want: []model.Applicant{},
		},
		{
			name: "persisted only, never set this run, is not listed",
			setup: func(t *testing.T, a *favorites.ApplicantFavorites, store prefs.Store) {
				a.Cache("j1", jane)
				require.NoError(t, store.PutBool(ctx, prefs.BucketApplicants, "j1_u1", true))
			},
			want: []model.Applicant{},
		},
		{
			name: "other jobs are ignored",
			setup: func(t *testing.T, a *favorites.ApplicantFavorites, _ prefs.Store) {
				require.NoError(t, a.SetFavorite(ctx, "j2", "u1", true))
			},
			want: []model.Applicant{},
		},
		{
			name: "first-set order is kept",
			setup: func(t *testing.T, a *favorites.ApplicantFavorites, _ prefs.Store) {
				require.NoError(t, a.SetFavorite(ctx, "j1", "u3", true))
				require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))
				require.NoError(t, a.SetFavorite(ctx, "j1", "u3", true))
			},
			want: []model.Applicant{
				{ID: "u3", Name: favorites.UnknownName, IsFavorite: true},
				{ID: "u1", Name: favorites.UnknownName, IsFavorite: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewMemoryStore()
			a := favorites.NewApplicantFavorites(store)
			tt.setup(t, a, store)
			assert.Equal(t, tt.want, a.FavoritesForJob(ctx, "j1"))
		})
	}
}

// In-memory true is enough even if storage says false.
func TestFavoritesForJob_InMemoryTrueWithPersistedFalse(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	a := favorites.NewApplicantFavorites(store)
	require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))
	require.NoError(t, store.PutBool(ctx, prefs.BucketApplicants, "j1_u1", false))

	got := a.FavoritesForJob(ctx, "j1")
	require.Len(t, got, 1)
	assert.True(t, got[0].IsFavorite)
}

// ── Cache / ClearCache ─────────────────────────────────────────────────────

func TestApplicantFavorites_CacheOverwrites(t *testing.T) {
	a := favorites.NewApplicantFavorites(prefs.NewMemoryStore())
	a.Cache("j1", model.Applicant{ID: "u1", Name: "Jane", MatchingScore: 10})
	a.Cache("j1", model.Applicant{ID: "u1", Name: "Jane Doe", MatchingScore: 20})

	got, ok := a.Cached("j1", "u1")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, 20.0, got.MatchingScore)
}

func TestApplicantFavorites_ClearCacheKeepsFlags(t *testing.T) {
	ctx := context.Background()
	a := favorites.NewApplicantFavorites(prefs.NewMemoryStore())
	a.Cache("j1", model.Applicant{ID: "u1", Name: "Jane"})
	a.Cache("j2", model.Applicant{ID: "u2", Name: "Piet"})
	require.NoError(t, a.SetFavorite(ctx, "j1", "u1", true))

	a.ClearCache("j1")

	_, ok := a.Cached("j1", "u1")
	assert.False(t, ok)
	_, ok = a.Cached("j2", "u2")
	assert.True(t, ok, "other jobs keep their cache")
	assert.True(t, a.IsFavorite(ctx, "j1", "u1"))

	got := a.FavoritesForJob(ctx, "j1")
	require.Len(t, got, 1)
	assert.Equal(t, favorites.UnknownName, got[0].Name)
}

// ── UpdateWithFavorites ────────────────────────────────────────────────────

func TestUpdateWithFavorites_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	a := favorites.NewApplicantFavorites(store)
	jane := model.Applicant{ID: "u1", Name: "Jane", MatchingScore: 87.5}
	a.Cache("j1", jane)
	require.NoError(t, store.PutBool(ctx, prefs.BucketApplicants, "j1_u1", true))

	got := a.UpdateWithFavorites(ctx, []model.Applicant{{ID: "u1", Name: "Jane", MatchingScore: 87.5}}, "j1")

	require.Len(t, got, 1)
	assert.True(t, got[0].IsFavorite)
	cached, ok := a.Cached("j1", "u1")
	require.True(t, ok)
	assert.Equal(t, "Jane", cached.Name)
	assert.Equal(t, 87.5, cached.MatchingScore)
}

func TestUpdateWithFavorites_CachesFavoritesOnly(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	a := favorites.NewApplicantFavorites(store)
	require.NoError(t, store.PutBool(ctx, prefs.BucketApplicants, "j1_u1", true))

	in := []model.Applicant{
		{ID: "u1", Name: "Jane", MatchingScore: 87.5},
		{ID: "u2", Name: "Kees", MatchingScore: 40, IsFavorite: true},
	}
	got := a.UpdateWithFavorites(ctx, in, "j1")

	assert.True(t, got[0].IsFavorite)
	assert.False(t, got[1].IsFavorite, "persisted flag overrides the incoming one")
	assert.False(t, in[0].IsFavorite, "input is not modified")

	_, ok := a.Cached("j1", "u1")
	assert.True(t, ok)
	_, ok = a.Cached("j1", "u2")
	assert.False(t, ok)
}

// ── Last viewed job ────────────────────────────────────────────────────────

func TestLastJobID(t *testing.T) {
	ctx := context.Background()
	a := favorites.NewApplicantFavorites(prefs.NewMemoryStore())

	assert.Equal(t, favorites.DefaultLastJobID, a.LastJobID(ctx))

	changed, err := a.SaveLastJobID(ctx, "j1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "j1", a.LastJobID(ctx))

	changed, err = a.SaveLastJobID(ctx, "j1")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = a.SaveLastJobID(ctx, "j2")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "j2", a.LastJobID(ctx))
}

func TestApplicantFavorites_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	a := favorites.NewApplicantFavorites(prefs.NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			a.Cache("j1", model.Applicant{ID: id, Name: id})
			_ = a.SetFavorite(ctx, "j1", id, true)
			_ = a.FavoritesForJob(ctx, "j1")
			if i%2 == 0 {
				a.ClearCache("j1")
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, a.FavoritesForJob(ctx, "j1"), 20)
}

// yieldingStore gives other goroutines a chance to run between a read and
// the write that follows it, like a network round trip to Redis would.
type yieldingStore struct {
	*prefs.MemoryStore
}

func (s yieldingStore) GetBool(ctx context.Context, bucket, key string) (bool, bool, error) {
	v, found, err := s.MemoryStore.GetBool(ctx, bucket, key)
	runtime.Gosched()
	return v, found, err
}

func TestApplicantFavorites_ConcurrentTogglesAllCount(t *testing.T) {
	ctx := context.Background()
	a := favorites.NewApplicantFavorites(yieldingStore{prefs.NewMemoryStore()})

	const toggles = 10
	results := make(chan bool, toggles)
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			on, err := a.ToggleFavorite(ctx, "j1", "u1")
			assert.NoError(t, err)
			results <- on
		}()
	}
	wg.Wait()
	close(results)

	var on int
	for r := range results {
		if r {
			on++
		}
	}
	assert.Equal(t, toggles/2, on, "every toggle must flip the previous state")
	assert.False(t, a.IsFavorite(ctx, "j1", "u1"))
}

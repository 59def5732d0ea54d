// Package prefs is the durable key/value layer behind favorites and session
// state. Values are scoped by named buckets; each bucket holds string, bool and
// string-set values under plain string keys.
package prefs

import (
	"context"
	"fmt"
)

// Buckets and well-known keys.
const (
	BucketJobs       = "job_preferences"
	BucketApplicants = "FavoriteApplicants"
	BucketApp        = "app_prefs"

	KeyFavoriteJobs  = "favorite_jobs"
	KeyLastJobID     = "lastJobId"
	KeyLoggedIn      = "isLoggedIn"
	KeyLoggedInEmail = "loggedInEmail"
)

// Store is implemented by every persistence backend.
// Get* methods report found=false (and no error) for absent keys.
type Store interface {
	GetString(ctx context.Context, bucket, key string) (value string, found bool, err error)
	PutString(ctx context.Context, bucket, key, value string) error
	GetBool(ctx context.Context, bucket, key string) (value bool, found bool, err error)
	PutBool(ctx context.Context, bucket, key string, value bool) error
	// GetStringSet returns the members sorted; an absent set is empty.
	GetStringSet(ctx context.Context, bucket, key string) ([]string, error)
	// PutStringSet replaces the whole set.
	PutStringSet(ctx context.Context, bucket, key string, values []string) error
	Remove(ctx context.Context, bucket string, keys ...string) error
}

// TypeError is returned when a key holds a value of a different kind than
// the one requested.
type TypeError struct {
	Bucket, Key, Want string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("prefs: %s/%s is not a %s", e.Bucket, e.Key, e.Want)
}

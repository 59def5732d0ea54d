// Package events publishes favorite changes to Redis so other recruiter
// front-ends sharing the same account can refresh their views.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channels.
const (
	ChannelFavoriteJobs       = "EVENT_FAVORITE_JOBS_CHANGED"
	ChannelApplicantFavorites = "EVENT_APPLICANT_FAVORITE_CHANGED"
)

const publishTimeout = 2 * time.Second

// FavoriteJobsEvent carries the complete favorite-job set after a change.
type FavoriteJobsEvent struct {
	Type   string   `json:"type"`
	JobIDs []string `json:"jobIds"`
	At     string   `json:"at"`
}

// ApplicantFavoriteEvent carries one applicant flag change.
type ApplicantFavoriteEvent struct {
	Type        string `json:"type"`
	JobID       string `json:"jobId"`
	ApplicantID string `json:"applicantId"`
	IsFavorite  bool   `json:"isFavorite"`
	At          string `json:"at"`
}

// Publisher sends favorite events. Publish failures are logged and dropped.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher returns a Publisher on rdb.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// FavoriteJobsChanged has the shape of a JobFavorites subscriber.
func (p *Publisher) FavoriteJobsChanged(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	p.publish(ctx, ChannelFavoriteJobs, FavoriteJobsEvent{
		Type:   ChannelFavoriteJobs,
		JobIDs: ids,
		At:     now(),
	})
}

// ApplicantFavoriteChanged implements recruiter.Notifier.
func (p *Publisher) ApplicantFavoriteChanged(ctx context.Context, jobID, applicantID string, isFavorite bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	p.publish(ctx, ChannelApplicantFavorites, ApplicantFavoriteEvent{
		Type:        ChannelApplicantFavorites,
		JobID:       jobID,
		ApplicantID: applicantID,
		IsFavorite:  isFavorite,
		At:          now(),
	})
}

func (p *Publisher) publish(ctx context.Context, channel string, v any) {
	event, _ := json.Marshal(v)
	if err := p.rdb.Publish(ctx, channel, event).Err(); err != nil {
		slog.Warn("publish "+channel+" failed", "err", err)
	}
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

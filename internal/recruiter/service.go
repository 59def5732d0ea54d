// Package recruiter contains the recruiter-facing business logic: job board,
// applicant lists and favorites. It is transport-agnostic: used by the HTTP
// API (api package), the CLI and the background refresher.
package recruiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"hrml/recruiter-service/internal/favorites"
	"hrml/recruiter-service/internal/hrml"
	"hrml/recruiter-service/internal/model"
)

// warmConcurrency bounds parallel applicant fetches during Refresh.
const warmConcurrency = 4

// ─── Collaborators ───────────────────────────────────────────────────────────

// Source is the remote platform.
type Source interface {
	FetchJobs(ctx context.Context) ([]model.Job, error)
	FetchApplicants(ctx context.Context, jobID string) ([]model.Applicant, error)
	FetchProfile(ctx context.Context, userID string) (*model.Profile, error)
	DownloadCV(ctx context.Context, userID string) ([]byte, error)
}

// Notifier is told about applicant favorite changes. Optional.
type Notifier interface {
	ApplicantFavoriteChanged(ctx context.Context, jobID, applicantID string, isFavorite bool)
}

// ─── Service ─────────────────────────────────────────────────────────────────

// Board is the home screen: the filtered job list plus totals over all jobs.
type Board struct {
	Jobs      []model.Job `json:"jobs"`
	Openings  int         `json:"openings"`
	Responses int         `json:"responses"`
}

// JobDetail is one job together with its applicants.
type JobDetail struct {
	Job        model.Job         `json:"job"`
	Applicants []model.Applicant `json:"applicants"`
}

// Service encapsulates the recruiter workflows.
type Service struct {
	src         Source
	jobs        *favorites.JobFavorites
	applicants  *favorites.ApplicantFavorites
	notifier    Notifier
	downloadDir string

	mu       sync.RWMutex
	snapshot []model.Job // last fetched job list
}

// NewService returns a configured Service. jobs must already be initialized.
func NewService(src Source, jobs *favorites.JobFavorites, applicants *favorites.ApplicantFavorites, downloadDir string) *Service {
	return &Service{src: src, jobs: jobs, applicants: applicants, downloadDir: downloadDir}
}

// WithNotifier sets the applicant favorite notifier and returns s.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

// Board fetches all jobs, overlays favorite flags and filters by title.
// Totals cover the unfiltered list.
func (s *Service) Board(ctx context.Context, query string) (*Board, error) {
	all, err := s.fetchJobs(ctx)
	if err != nil {
		return nil, err
	}
	openings, responses := Totals(all)
	return &Board{
		Jobs:      FilterJobs(s.overlayJobs(all), query),
		Openings:  openings,
		Responses: responses,
	}, nil
}

// FavoriteJobs returns the fetched jobs that are in the favorite set,
// filtered by title.
func (s *Service) FavoriteJobs(ctx context.Context, query string) ([]model.Job, error) {
	all, err := s.fetchJobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Job, 0)
	for _, j := range s.overlayJobs(all) {
		if j.IsFavorite && MatchesTitle(j.Title, query) {
			out = append(out, j)
		}
	}
	return out, nil
}

// ToggleJobFavorite flips a job's favorite flag and returns the new state.
func (s *Service) ToggleJobFavorite(ctx context.Context, jobID string) (bool, error) {
	if jobID == "" {
		return false, &ValidationError{Msg: "job id is required"}
	}
	return s.jobs.Toggle(ctx, jobID), nil
}

// Snapshot returns the job list of the last successful fetch.
func (s *Service) Snapshot() []model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlayJobs(s.snapshot)
}

// Job returns one job of the last snapshot, fetching the board when no
// snapshot exists yet.
func (s *Service) Job(ctx context.Context, jobID string) (*model.Job, error) {
	jobs := s.Snapshot()
	if len(jobs) == 0 {
		fetched, err := s.fetchJobs(ctx)
		if err != nil {
			return nil, err
		}
		jobs = s.overlayJobs(fetched)
	}
	for _, j := range jobs {
		if j.ID == jobID {
			return &j, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) fetchJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.src.FetchJobs(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.snapshot = jobs
	s.mu.Unlock()
	return jobs, nil
}

func (s *Service) overlayJobs(jobs []model.Job) []model.Job {
	out := make([]model.Job, len(jobs))
	for i, j := range jobs {
		j.IsFavorite = s.jobs.IsFavorite(j.ID)
		out[i] = j
	}
	return out
}

// ─── Applicants ──────────────────────────────────────────────────────────────

// Applicants fetches the applicants of jobID, caches them with their
// persisted favorite flags and remembers jobID as the last viewed job.
func (s *Service) Applicants(ctx context.Context, jobID string) ([]model.Applicant, error) {
	if jobID == "" {
		return nil, &ValidationError{Msg: "job id is required"}
	}
	fetched, err := s.src.FetchApplicants(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.acceptApplicants(ctx, jobID, fetched), nil
}

// JobDetail fetches the job list and the applicants of jobID in parallel.
// When ctx ends first, or one fetch fails, the other is cancelled and its
// late result is discarded.
func (s *Service) JobDetail(ctx context.Context, jobID string) (*JobDetail, error) {
	if jobID == "" {
		return nil, &ValidationError{Msg: "job id is required"}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobsCh := hrml.Go(ctx, s.fetchJobs)
	appsCh := hrml.Go(ctx, func(ctx context.Context) ([]model.Applicant, error) {
		return s.src.FetchApplicants(ctx, jobID)
	})

	jobs, err := hrml.Await(ctx, jobsCh)
	if err != nil {
		return nil, err
	}
	var job *model.Job
	for _, j := range s.overlayJobs(jobs) {
		if j.ID == jobID {
			job = &j
			break
		}
	}
	if job == nil {
		return nil, ErrNotFound
	}

	fetched, err := hrml.Await(ctx, appsCh)
	if err != nil {
		return nil, err
	}
	return &JobDetail{Job: *job, Applicants: s.acceptApplicants(ctx, jobID, fetched)}, nil
}

// acceptApplicants caches a fresh applicant list, remembers jobID as the
// last viewed job and returns the list with persisted favorite flags.
func (s *Service) acceptApplicants(ctx context.Context, jobID string, fetched []model.Applicant) []model.Applicant {
	for _, a := range fetched {
		s.applicants.Cache(jobID, a)
	}
	s.rememberJob(ctx, jobID)
	return s.applicants.UpdateWithFavorites(ctx, fetched, jobID)
}

// SelectFavoriteJob switches the favorites screen to jobID: the job's cache
// is cleared, a fresh list is fetched, and only the favorites are returned.
func (s *Service) SelectFavoriteJob(ctx context.Context, jobID string) ([]model.Applicant, error) {
	if jobID == "" {
		return nil, &ValidationError{Msg: "job id is required"}
	}
	s.applicants.ClearCache(jobID)
	s.rememberJob(ctx, jobID)

	fetched, err := s.src.FetchApplicants(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Applicant, 0)
	for _, a := range s.applicants.UpdateWithFavorites(ctx, fetched, jobID) {
		if a.IsFavorite {
			out = append(out, a)
		}
	}
	return out, nil
}

// ToggleApplicantFavorite flips the applicant's flag within jobID.
func (s *Service) ToggleApplicantFavorite(ctx context.Context, jobID, applicantID string) (bool, error) {
	if jobID == "" || applicantID == "" {
		return false, &ValidationError{Msg: "job id and applicant id are required"}
	}
	next, err := s.applicants.ToggleFavorite(ctx, jobID, applicantID)
	if err != nil {
		return next, fmt.Errorf("persist applicant favorite: %w", err)
	}
	if s.notifier != nil {
		s.notifier.ApplicantFavoriteChanged(ctx, jobID, applicantID, next)
	}
	return next, nil
}

// SessionFavorites lists the favorites of jobID touched in this process.
func (s *Service) SessionFavorites(ctx context.Context, jobID string) []model.Applicant {
	return s.applicants.FavoritesForJob(ctx, jobID)
}

// LastJobID returns the last viewed job.
func (s *Service) LastJobID(ctx context.Context) string {
	return s.applicants.LastJobID(ctx)
}

func (s *Service) rememberJob(ctx context.Context, jobID string) {
	if _, err := s.applicants.SaveLastJobID(ctx, jobID); err != nil {
		slog.Warn("save lastJobId failed", "jobId", jobID, "err", err)
	}
}

// ─── Profiles & CVs ──────────────────────────────────────────────────────────

// Profile returns the applicant's CV contact details.
func (s *Service) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, &ValidationError{Msg: "user id is required"}
	}
	return s.src.FetchProfile(ctx, userID)
}

// CV returns the applicant's CV PDF.
func (s *Service) CV(ctx context.Context, userID string) ([]byte, error) {
	if err := validateFileID(userID); err != nil {
		return nil, err
	}
	return s.src.DownloadCV(ctx, userID)
}

// DownloadCV saves the applicant's CV as cv_{userID}.pdf in the download
// directory and returns the file path.
func (s *Service) DownloadCV(ctx context.Context, userID string) (string, error) {
	pdf, err := s.CV(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(s.downloadDir, CVFileName(userID))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write cv: %w", err)
	}
	return path, nil
}

// CVFileName is the file name a downloaded CV is saved under.
func CVFileName(userID string) string {
	return fmt.Sprintf("cv_%s.pdf", userID)
}

func validateFileID(id string) error {
	if id == "" {
		return &ValidationError{Msg: "user id is required"}
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return &ValidationError{Msg: fmt.Sprintf("invalid user id %q", id)}
	}
	return nil
}

// ─── Background refresh ──────────────────────────────────────────────────────

// Refresh re-fetches the job list and warms the applicant cache of every
// favorite job, so favorite listings have names and scores to show.
func (s *Service) Refresh(ctx context.Context) error {
	if _, err := s.fetchJobs(ctx); err != nil {
		return fmt.Errorf("refresh jobs: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, jobID := range s.jobs.FavoriteIDs() {
		g.Go(func() error {
			fetched, err := s.src.FetchApplicants(gCtx, jobID)
			if err != nil {
				return fmt.Errorf("warm applicants of %s: %w", jobID, err)
			}
			for _, a := range fetched {
				s.applicants.Cache(jobID, a)
			}
			return nil
		})
	}
	return g.Wait()
}

// ─── Errors ──────────────────────────────────────────────────────────────────

// ErrNotFound is returned when a requested job is not on the board.
var ErrNotFound = errors.New("job not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }


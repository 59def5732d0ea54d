package recruiter

import (
	"strings"

	"hrml/recruiter-service/internal/model"
)

// MatchesTitle returns true if query appears (case-insensitive) anywhere in
// title. An empty query matches everything.
func MatchesTitle(title, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

// FilterJobs keeps the jobs whose title matches query, preserving order.
func FilterJobs(jobs []model.Job, query string) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if MatchesTitle(j.Title, query) {
			out = append(out, j)
		}
	}
	return out
}

// Totals returns the number of vacancies and the sum of their reactions.
func Totals(jobs []model.Job) (openings, responses int) {
	for _, j := range jobs {
		responses += j.Reactions
	}
	return len(jobs), responses
}

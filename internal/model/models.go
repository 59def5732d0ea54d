// Package model defines shared data structures for the recruiter service.
package model

// Job is a vacancy as listed by the HRML platform.
// IsFavorite is never stored with the job; it is overlaid from the
// favorite-job set when a list is shown.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reactions   int    `json:"reactions"`
	IsFavorite  bool   `json:"isFavorite"`
}

// Applicant is a candidate who reacted to a vacancy.
type Applicant struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MatchingScore float64 `json:"matchingScore"` // display-only, usually 0–100
	IsFavorite    bool    `json:"isFavorite"`
}

// Profile holds the CV contact details shown in the applicant popup.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
	Phone string `json:"phone"`
}

// LoginResult mirrors the /login response body.
type LoginResult struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// Success reports whether the platform accepted a recruiter login.
func (r LoginResult) Success() bool {
	return r.Message == "Login successful" && r.Role == "recruiter"
}

// Package hrml is the client for the HRML recruiting platform API.
//
// Endpoints:
//
//	GET  /get_vacancy_titles_and_descriptions   → vacancies
//	GET  /get_vacancy_applicants?vacature_id=   → applicants of one vacancy
//	GET  /get_user_profile?_id=                 → CV contact details
//	GET  /download_pdf?_id=                     → CV as PDF
//	POST /login                                 → {message, role}
//
// Requests are single-shot: no retries, only the transport timeout.
package hrml

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"hrml/recruiter-service/internal/model"
)

// DefaultTimeout matches the connect/read/write timeouts of the mobile app.
const DefaultTimeout = 30 * time.Second

// Client talks to the HRML platform. Safe for concurrent use.
type Client struct {
	http *resty.Client
}

// NewClient constructs a client for baseURL. A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// FetchJobs lists all vacancies. Malformed records are skipped.
func (c *Client) FetchJobs(ctx context.Context) ([]model.Job, error) {
	const op = "fetch jobs"
	body, err := c.get(ctx, op, "/get_vacancy_titles_and_descriptions", nil)
	if err != nil {
		return nil, err
	}
	return parseList(op, body, parseJob)
}

// FetchApplicants lists the applicants of one vacancy. Malformed records are
// skipped; a missing matching score is 0.
func (c *Client) FetchApplicants(ctx context.Context, jobID string) ([]model.Applicant, error) {
	const op = "fetch applicants"
	body, err := c.get(ctx, op, "/get_vacancy_applicants", map[string]string{"vacature_id": jobID})
	if err != nil {
		return nil, err
	}
	return parseList(op, body, parseApplicant)
}

// FetchProfile returns the CV contact details of userID.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*model.Profile, error) {
	const op = "fetch profile"
	body, err := c.get(ctx, op, "/get_user_profile", map[string]string{"_id": userID})
	if err != nil {
		return nil, err
	}
	return parseProfile(op, userID, body)
}

// DownloadCV returns the raw PDF of userID's CV.
func (c *Client) DownloadCV(ctx context.Context, userID string) ([]byte, error) {
	const op = "download cv"
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/pdf").
		SetQueryParam("_id", userID).
		Get("/download_pdf")
	if err := checkResponse(op, resp, err); err != nil {
		return nil, err
	}
	if len(resp.Body()) == 0 {
		return nil, parseFailure(op, "empty response body")
	}
	return resp.Body(), nil
}

// Login posts the e-mail and the SHA-256 hex digest of password. The caller
// decides acceptance with LoginResult.Success.
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	const op = "login"
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"email":    email,
			"password": HashPassword(password),
		}).
		Post("/login")
	if err := checkResponse(op, resp, err); err != nil {
		return nil, err
	}
	return parseLogin(op, resp.Body())
}

// HashPassword returns the lowercase hex SHA-256 digest the platform expects.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (c *Client) get(ctx context.Context, op, path string, query map[string]string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err := checkResponse(op, resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return transportFailure(op, err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return &Failure{
			Kind: KindTransport,
			Op:   op,
			Msg:  fmt.Sprintf("server returned %d", resp.StatusCode()),
		}
	}
	return nil
}

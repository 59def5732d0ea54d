// Package api implements the HTTP handlers for the recruiter service.
//
// Routes:
//
//	GET  /jobs?q=                                   → job board with totals
//	GET  /jobs/favorites?q=                         → favorite jobs
//	GET  /jobs/:id                                  → one job from the board
//	POST /jobs/:id/favorite                         → toggle job favorite
//	GET  /jobs/:id/detail                           → job with its applicants
//	GET  /jobs/:id/applicants                       → applicants with favorite flags
//	GET  /jobs/:id/applicants/favorites             → switch favorites view to job
//	GET  /jobs/:id/favorites/session                → favorites touched this run
//	POST /jobs/:id/applicants/:applicantId/favorite → toggle applicant favorite
//	GET  /applicants/:id/profile                    → CV contact details
//	GET  /applicants/:id/cv                         → CV PDF
//	POST /login | POST /logout | GET /session       → login state
package api

import (
	"errors"
	"html"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"

	"hrml/recruiter-service/internal/hrml"
	"hrml/recruiter-service/internal/model"
	"hrml/recruiter-service/internal/recruiter"
	"hrml/recruiter-service/internal/session"
)

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	svc      *recruiter.Service
	sessions *session.Manager
	text     *bluemonday.Policy
}

// NewHandler returns a configured Handler.
func NewHandler(svc *recruiter.Service, sessions *session.Manager) *Handler {
	return &Handler{svc: svc, sessions: sessions, text: bluemonday.StrictPolicy()}
}

// RegisterRoutes mounts all recruiter routes on app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/jobs", h.board)
	app.Get("/jobs/favorites", h.favoriteJobs)
	app.Get("/jobs/:id", h.job)
	app.Post("/jobs/:id/favorite", h.toggleJobFavorite)
	app.Get("/jobs/:id/detail", h.jobDetail)
	app.Get("/jobs/:id/applicants", h.applicants)
	app.Get("/jobs/:id/applicants/favorites", h.selectFavoriteJob)
	app.Get("/jobs/:id/favorites/session", h.sessionFavorites)
	app.Post("/jobs/:id/applicants/:applicantId/favorite", h.toggleApplicantFavorite)
	app.Get("/applicants/:id/profile", h.profile)
	app.Get("/applicants/:id/cv", h.cv)
	app.Post("/login", h.login)
	app.Post("/logout", h.logout)
	app.Get("/session", h.session)
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

func (h *Handler) board(c *fiber.Ctx) error {
	board, err := h.svc.Board(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	board.Jobs = h.plainText(board.Jobs)
	return c.JSON(board)
}

func (h *Handler) favoriteJobs(c *fiber.Ctx) error {
	jobs, err := h.svc.FavoriteJobs(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": h.plainText(jobs)})
}

func (h *Handler) job(c *fiber.Ctx) error {
	j, err := h.svc.Job(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(h.plainText([]model.Job{*j})[0])
}

func (h *Handler) jobDetail(c *fiber.Ctx) error {
	d, err := h.svc.JobDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	d.Job = h.plainText([]model.Job{d.Job})[0]
	return c.JSON(d)
}

func (h *Handler) toggleJobFavorite(c *fiber.Ctx) error {
	jobID := c.Params("id")
	on, err := h.svc.ToggleJobFavorite(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	log.Printf("[api] job %s favorite=%v", jobID, on)
	return c.JSON(fiber.Map{"jobId": jobID, "isFavorite": on})
}

// plainText strips HTML from descriptions; vacancies are written in a rich
// text editor on the platform side.
func (h *Handler) plainText(jobs []model.Job) []model.Job {
	out := make([]model.Job, len(jobs))
	for i, j := range jobs {
		j.Description = html.UnescapeString(h.text.Sanitize(j.Description))
		out[i] = j
	}
	return out
}

// ─── Applicants ──────────────────────────────────────────────────────────────

func (h *Handler) applicants(c *fiber.Ctx) error {
	list, err := h.svc.Applicants(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applicants": list})
}

func (h *Handler) selectFavoriteJob(c *fiber.Ctx) error {
	list, err := h.svc.SelectFavoriteJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applicants": list})
}

func (h *Handler) sessionFavorites(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"applicants": h.svc.SessionFavorites(c.UserContext(), c.Params("id"))})
}

func (h *Handler) toggleApplicantFavorite(c *fiber.Ctx) error {
	jobID, applicantID := c.Params("id"), c.Params("applicantId")
	on, err := h.svc.ToggleApplicantFavorite(c.UserContext(), jobID, applicantID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobId": jobID, "applicantId": applicantID, "isFavorite": on})
}

func (h *Handler) profile(c *fiber.Ctx) error {
	p, err := h.svc.Profile(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) cv(c *fiber.Ctx) error {
	userID := c.Params("id")
	pdf, err := h.svc.CV(c.UserContext(), userID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+recruiter.CVFileName(userID)+`"`)
	return c.Send(pdf)
}

// ─── Session ─────────────────────────────────────────────────────────────────

func (h *Handler) login(c *fiber.Ctx) error {
	var creds session.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := h.sessions.Login(c.UserContext(), creds); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"loggedIn": true, "email": creds.Email})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"loggedIn": false})
}

func (h *Handler) session(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return c.JSON(fiber.Map{
		"loggedIn":  h.sessions.IsLoggedIn(ctx),
		"email":     h.sessions.Email(ctx),
		"lastJobId": h.svc.LastJobID(ctx),
	})
}

// ─── Errors ──────────────────────────────────────────────────────────────────

// ErrorHandler maps service errors to status codes with an {"error": msg} body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var (
		fe   *fiber.Error
		rve  *recruiter.ValidationError
		sve  *session.ValidationError
		fail *hrml.Failure
	)
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.As(err, &rve), errors.As(err, &sve):
		code = fiber.StatusBadRequest
	case errors.Is(err, session.ErrRejected):
		code = fiber.StatusUnauthorized
	case errors.Is(err, recruiter.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.As(err, &fail):
		code = fiber.StatusBadGateway
	}

	message := err.Error()
	if message == "" {
		message = "Internal Server Error"
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[api] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}

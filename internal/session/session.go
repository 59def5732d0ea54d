// Package session keeps the recruiter's login state in the app_prefs bucket.
// It only remembers who logged in; it is not an authentication boundary.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"hrml/recruiter-service/internal/model"
	"hrml/recruiter-service/internal/prefs"
)

// ErrRejected is returned when the platform does not accept the login as a
// recruiter login.
var ErrRejected = errors.New("login rejected: not a recruiter account or wrong credentials")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Credentials is what the login form submits.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Authenticator is the remote login call.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.LoginResult, error)
}

// Manager logs recruiters in and out.
type Manager struct {
	auth     Authenticator
	store    prefs.Store
	validate *validator.Validate
}

// NewManager returns a configured Manager.
func NewManager(auth Authenticator, store prefs.Store) *Manager {
	return &Manager{auth: auth, store: store, validate: validator.New()}
}

// Login validates creds, asks the platform, and on success remembers the
// e-mail address. Nothing is stored when the login is rejected.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	if err := m.validate.Struct(creds); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{Msg: fmt.Sprintf("%s is %s", verrs[0].Field(), describe(verrs[0].Tag()))}
		}
		return &ValidationError{Msg: err.Error()}
	}

	res, err := m.auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}
	if !res.Success() {
		slog.Info("login rejected", "email", creds.Email, "role", res.Role)
		return ErrRejected
	}

	if err := m.store.PutBool(ctx, prefs.BucketApp, prefs.KeyLoggedIn, true); err != nil {
		return fmt.Errorf("store login state: %w", err)
	}
	if err := m.store.PutString(ctx, prefs.BucketApp, prefs.KeyLoggedInEmail, creds.Email); err != nil {
		return fmt.Errorf("store login e-mail: %w", err)
	}
	return nil
}

// IsLoggedIn reports the stored login flag; read errors count as logged out.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	v, _, err := m.store.GetBool(ctx, prefs.BucketApp, prefs.KeyLoggedIn)
	if err != nil {
		slog.Warn("read login state failed", "err", err)
		return false
	}
	return v
}

// Email returns the e-mail address of the logged-in recruiter, or "".
func (m *Manager) Email(ctx context.Context) string {
	v, _, err := m.store.GetString(ctx, prefs.BucketApp, prefs.KeyLoggedInEmail)
	if err != nil {
		slog.Warn("read login e-mail failed", "err", err)
	}
	return v
}

// Logout forgets the login.
func (m *Manager) Logout(ctx context.Context) error {
	return m.store.Remove(ctx, prefs.BucketApp, prefs.KeyLoggedIn, prefs.KeyLoggedInEmail)
}

func describe(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "email":
		return "not a valid e-mail address"
	}
	return "invalid"
}

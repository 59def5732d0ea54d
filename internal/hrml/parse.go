package hrml

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tidwall/gjson"

	"hrml/recruiter-service/internal/model"
)

const notAvailable = "N/A"

// parseList walks a JSON array and converts each element with parseItem.
// Bad elements are logged and skipped; only a body that is not an array
// fails as a whole.
func parseList[T any](op string, body []byte, parseItem func(gjson.Result) (T, error)) ([]T, error) {
	if !gjson.ValidBytes(body) {
		return nil, parseFailure(op, "response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, parseFailure(op, "response is not a JSON array")
	}

	out := make([]T, 0)
	idx := 0
	root.ForEach(func(_, item gjson.Result) bool {
		v, err := parseItem(item)
		if err != nil {
			slog.Warn("skipping malformed record", "op", op, "index", idx, "err", err)
		} else {
			out = append(out, v)
		}
		idx++
		return true
	})
	return out, nil
}

// parseJob maps {_id, functietitel, beschrijving, reactions}.
func parseJob(item gjson.Result) (model.Job, error) {
	if !item.IsObject() {
		return model.Job{}, fmt.Errorf("record is not an object")
	}
	id, err := requiredString(item, "_id")
	if err != nil {
		return model.Job{}, err
	}
	title, err := requiredString(item, "functietitel")
	if err != nil {
		return model.Job{}, err
	}
	desc, err := requiredString(item, "beschrijving")
	if err != nil {
		return model.Job{}, err
	}
	reactions, err := requiredInt(item, "reactions")
	if err != nil {
		return model.Job{}, err
	}
	if reactions < 0 {
		return model.Job{}, fmt.Errorf("reactions is negative: %d", reactions)
	}
	return model.Job{ID: id, Title: title, Description: desc, Reactions: reactions}, nil
}

// parseApplicant maps {user_id, name, matchingscore?}; a missing or
// non-numeric score is 0.
func parseApplicant(item gjson.Result) (model.Applicant, error) {
	if !item.IsObject() {
		return model.Applicant{}, fmt.Errorf("record is not an object")
	}
	id, err := requiredString(item, "user_id")
	if err != nil {
		return model.Applicant{}, err
	}
	name, err := requiredString(item, "name")
	if err != nil {
		return model.Applicant{}, err
	}
	return model.Applicant{ID: id, Name: name, MatchingScore: optionalFloat(item, "matchingscore")}, nil
}

// parseProfile maps the user profile object. Every field falls back to "N/A".
func parseProfile(op, userID string, body []byte) (*model.Profile, error) {
	if !gjson.ValidBytes(body) {
		return nil, parseFailure(op, "response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, parseFailure(op, "response is not a JSON object")
	}
	return &model.Profile{
		ID:    userID,
		Name:  stringOr(root, "name", notAvailable),
		Email: stringOr(root, "email", notAvailable),
		City:  stringOr(root, "cv_tekst.woonplaats", notAvailable),
		Phone: stringOr(root, "cv_tekst.telefoon_nummer", notAvailable),
	}, nil
}

func parseLogin(op string, body []byte) (*model.LoginResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, parseFailure(op, "response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, parseFailure(op, "response is not a JSON object")
	}
	return &model.LoginResult{
		Message: root.Get("message").String(),
		Role:    root.Get("role").String(),
	}, nil
}

// ─── Field helpers ───────────────────────────────────────────────────────────

func requiredString(item gjson.Result, path string) (string, error) {
	r := item.Get(path)
	switch r.Type {
	case gjson.String, gjson.Number:
		return r.String(), nil
	case gjson.Null:
		if !r.Exists() {
			return "", fmt.Errorf("missing field %q", path)
		}
		return "", fmt.Errorf("field %q is null", path)
	}
	return "", fmt.Errorf("field %q is not a string", path)
}

func requiredInt(item gjson.Result, path string) (int, error) {
	r := item.Get(path)
	switch r.Type {
	case gjson.Number:
		return int(r.Int()), nil
	case gjson.String:
		v, err := strconv.Atoi(r.Str)
		if err != nil {
			return 0, fmt.Errorf("field %q is not an integer: %q", path, r.Str)
		}
		return v, nil
	}
	if !r.Exists() {
		return 0, fmt.Errorf("missing field %q", path)
	}
	return 0, fmt.Errorf("field %q is not an integer", path)
}

func optionalFloat(item gjson.Result, path string) float64 {
	r := item.Get(path)
	switch r.Type {
	case gjson.Number:
		return r.Float()
	case gjson.String:
		if v, err := strconv.ParseFloat(r.Str, 64); err == nil {
			return v
		}
	}
	return 0
}

func stringOr(root gjson.Result, path, def string) string {
	r := root.Get(path)
	if !r.Exists() || r.Type == gjson.Null {
		return def
	}
	return r.String()
}

package hrml

import (
	"errors"
	"fmt"
)

// Kind classifies a Failure.
type Kind string

const (
	KindTransport Kind = "transport" // unreachable, timeout, non-2xx
	KindParse     Kind = "parse"     // body is not the expected JSON shape
)

// Failure is the only error type returned by Client. Its message is meant to
// be shown to the recruiter as is; the platform does not report structured
// error codes, so not-found is a transport failure like any other non-2xx.
type Failure struct {
	Kind Kind
	Op   string // e.g. "fetch jobs"
	Msg  string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failed: %s", f.Op, f.Msg)
}

func (f *Failure) Unwrap() error { return f.Err }

// IsTransport reports whether err is a transport Failure.
func IsTransport(err error) bool { return kindOf(err) == KindTransport }

// IsParse reports whether err is a parse Failure.
func IsParse(err error) bool { return kindOf(err) == KindParse }

func kindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

func transportFailure(op string, err error) *Failure {
	return &Failure{Kind: KindTransport, Op: op, Msg: err.Error(), Err: err}
}

func parseFailure(op, msg string) *Failure {
	return &Failure{Kind: KindParse, Op: op, Msg: msg}
}

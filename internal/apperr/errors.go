// Package apperr is the error taxonomy shared by the services and the HTTP
// boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrStore            = errors.New("store failure")
)

// Error carries a kind (one of the sentinels above), the operation that failed,
// a client-safe message and the underlying cause.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

// Is matches the kind, so errors.Is(err, ErrNotFound) works through wrapping.
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

func MissingParameter(op, msg string) error {
	return &Error{Kind: ErrMissingParameter, Op: op, Msg: msg}
}

func Validation(op, msg string) error {
	return &Error{Kind: ErrValidation, Op: op, Msg: msg}
}

func NotFound(op, msg string) error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: msg}
}

// Store wraps a persistence failure. The cause is kept for logs only.
func Store(op, msg string, err error) error {
	return &Error{Kind: ErrStore, Op: op, Msg: msg, Err: err}
}

// Status maps err to the HTTP status the boundary answers with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrMissingParameter), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message is the text safe to show a client. A store error's cause is never
// exposed; without a message of its own it collapses to fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}

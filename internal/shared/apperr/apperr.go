// Package apperr defines the error kinds shared by all features and their HTTP status mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Feature errors wrap one of these so the transport layer can map
// them to a status code without knowing the feature.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error is a user-visible failure of a given kind.
type Error struct {
	kind error
	msg  string
}

// New returns an Error of the given kind carrying a short public message.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Validation returns a formatted ErrValidation error.
func Validation(format string, args ...any) *Error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// HTTPStatus maps an error to the status code returned to the caller.
// Errors without a known kind are internal.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that is safe to show to the caller.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return "internal server error"
}

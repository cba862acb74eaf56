// Package apperr defines the error kinds shared by every feature.
// Feature errors wrap exactly one kind so that transport code can map them with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrForbidden is returned when the actor lacks permission on a specific resource.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized is returned for missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState is returned when the entity state rejects the operation.
	ErrInvalidState = errors.New("invalid state")
)

// Error is a feature error of a given kind. Its message is safe to show to clients.
type Error struct {
	kind error
	msg  string
}

// New returns an error of kind with the client-facing message msg.
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// HTTPStatus maps an error to the status code the transport layer should answer with.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err.
// Errors without a known kind are reported generically so storage details never leak.
func Message(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

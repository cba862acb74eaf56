// Package usecase implements the business logic for the user feature.
package usecase

import "teamflow_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")

	// ErrEmailAlreadyExists is returned when an email is already used by another user.
	ErrEmailAlreadyExists = apperr.New(apperr.ErrConflict, "email already exists")
)

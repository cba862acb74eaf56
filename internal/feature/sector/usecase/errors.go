// Package usecase implements the business logic for the sector feature.
package usecase

import "teamflow_backend/internal/shared/apperr"

var (
	// ErrSectorNotFound is returned when no sector has the requested ID.
	ErrSectorNotFound = apperr.New(apperr.ErrNotFound, "sector not found")

	// ErrSectorNameExists is returned when another sector already uses the name.
	ErrSectorNameExists = apperr.New(apperr.ErrConflict, "sector name already exists")

	// ErrSectorInUse is returned when deleting a sector that projects still reference.
	ErrSectorInUse = apperr.New(apperr.ErrInvalidState, "sector has projects")
)

// Package usecase implements the business logic for the project feature.
package usecase

import "teamflow_backend/internal/shared/apperr"

var (
	// ErrProjectNotFound is returned when no project has the requested ID.
	ErrProjectNotFound = apperr.New(apperr.ErrNotFound, "project not found")

	// ErrProjectNameExists is returned when an active project of the same sector already uses the name.
	ErrProjectNameExists = apperr.New(apperr.ErrConflict, "project with this name already exists in the sector")

	// ErrSectorOrMemberNotFound is returned when a project references a sector or user that does not exist.
	ErrSectorOrMemberNotFound = apperr.New(apperr.ErrNotFound, "sector or member not found")

	// ErrProjectHasMembers is returned when deleting a project that still has members.
	ErrProjectHasMembers = apperr.New(apperr.ErrInvalidState, "project has members and cannot be deleted")

	// ErrMemberNotInProject is returned when removing a user who is not a member.
	ErrMemberNotInProject = apperr.New(apperr.ErrNotFound, "user is not a member of this project")
)

// Package usecase implements the business logic for the auth feature.
package usecase

import "teamflow_backend/internal/shared/apperr"

// ErrInvalidCredentials is returned for an unknown email, a wrong password or an inactive user.
// The message is the same in every case so callers cannot probe which one failed.
var ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "credentials erradas")

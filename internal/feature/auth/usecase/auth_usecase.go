package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userentity "teamflow_backend/internal/feature/user/domain/entity"
	"teamflow_backend/internal/shared/apperr"
)

// UserRepository looks up the user logging in.
// Following Go convention, the interface is defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// FindByEmail returns an apperr.ErrNotFound error when no user has email.
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)
}

// PasswordVerifier checks a plaintext password against a stored hash.
// An empty hash must still cost a full comparison and report false.
type PasswordVerifier interface {
	Compare(hashed, plain string) bool
}

// TokenGenerator issues signed session tokens.
type TokenGenerator interface {
	GenerateToken(userID, name, email, role string) (string, error)
}

// authUsecase implements authentication.
type authUsecase struct {
	users     UserRepository
	passwords PasswordVerifier
	tokens    TokenGenerator
}

// NewAuthUsecase creates an authUsecase.
func NewAuthUsecase(users UserRepository, passwords PasswordVerifier, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
	}
}

// Authenticate verifies the credentials and returns a signed token.
// The bcrypt comparison always runs, also when the email is unknown, to keep timing uniform.
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}

	hash := ""
	if user != nil {
		hash = user.Password
	}
	matched := u.passwords.Compare(hash, password)

	if user == nil || !matched || !user.IsActive {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Name, user.Email, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"teamflow_backend/internal/feature/user/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns ErrUserNotFound when no user has id.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail returns ErrUserNotFound when no user has email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll returns every user ordered by name.
	FindAll(ctx context.Context) ([]entity.User, error)

	// FilterByName returns users whose name contains name, case-insensitively.
	FilterByName(ctx context.Context, name string) ([]entity.User, error)

	// Update applies changes and returns the updated user.
	Update(ctx context.Context, id string, changes entity.Update) (*entity.User, error)

	// Deactivate sets is_active to false.
	Deactivate(ctx context.Context, id string) error

	// Delete removes the user. It returns ErrUserNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}

// PasswordHasher hashes plaintext passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// CreateInput is the data needed to register a user.
// An empty Role defaults to MEMBRO.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Avatar   *string
	Role     entity.Role
}

// ProfileInput is what a user may change on their own record.
type ProfileInput struct {
	Name     *string
	Email    *string
	Password *string
	Avatar   *string
}

// UpdateInput is what a DIRETOR may change on any user. Password is plaintext.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Avatar   *string
	Role     *entity.Role
	IsActive *bool
}

// UserUsecase implements user management.
type UserUsecase struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewUserUsecase creates a UserUsecase.
func NewUserUsecase(users UserRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a user with a hashed password.
func (u *UserUsecase) CreateUser(ctx context.Context, in CreateInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleMembro
	}

	user := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashed,
		Avatar:   in.Avatar,
		Role:     role,
		IsActive: true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// GetUserByID returns the user with id.
func (u *UserUsecase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// ListUsers returns all users, or those whose name contains name when it is not empty.
func (u *UserUsecase) ListUsers(ctx context.Context, name string) ([]entity.User, error) {
	if name = strings.TrimSpace(name); name != "" {
		return u.users.FilterByName(ctx, name)
	}
	return u.users.FindAll(ctx)
}

// UpdateUser changes any field of the user with id.
func (u *UserUsecase) UpdateUser(ctx context.Context, id string, in UpdateInput) (*entity.User, error) {
	return u.update(ctx, id, entity.Update{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Avatar:   in.Avatar,
		Role:     in.Role,
		IsActive: in.IsActive,
	})
}

// UpdateProfile changes the actor's own name, email, password or avatar.
func (u *UserUsecase) UpdateProfile(ctx context.Context, actorID string, in ProfileInput) (*entity.User, error) {
	return u.update(ctx, actorID, entity.Update{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Avatar:   in.Avatar,
	})
}

// update re-validates email uniqueness excluding the user itself and rehashes a new password.
func (u *UserUsecase) update(ctx context.Context, id string, changes entity.Update) (*entity.User, error) {
	current, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Email != nil {
		email := normalizeEmail(*changes.Email)
		changes.Email = &email

		other, err := u.users.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != current.ID:
			return nil, ErrEmailAlreadyExists
		case err != nil && !errors.Is(err, ErrUserNotFound):
			return nil, err
		}
	}

	if changes.Password != nil {
		hashed, err := u.hasher.Hash(*changes.Password)
		if err != nil {
			return nil, err
		}
		changes.Password = &hashed
	}

	if changes.IsEmpty() {
		return current, nil
	}

	updated, err := u.users.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	slog.Info("user updated", "user_id", id)
	return updated, nil
}

// DeactivateUser soft-disables the user. Deactivating an inactive user succeeds.
func (u *UserUsecase) DeactivateUser(ctx context.Context, id string) error {
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := u.users.Deactivate(ctx, id); err != nil {
		return err
	}
	slog.Info("user deactivated", "user_id", id)
	return nil
}

// DeleteUser removes the user permanently.
func (u *UserUsecase) DeleteUser(ctx context.Context, id string) error {
	if err := u.users.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted", "user_id", id)
	return nil
}

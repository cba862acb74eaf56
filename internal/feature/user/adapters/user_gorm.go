// Package adapters provides the repository implementations for the user feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"teamflow_backend/internal/feature/user/domain/entity"
	"teamflow_backend/internal/feature/user/usecase"
	"teamflow_backend/internal/platform/db"
)

// userGorm is the GORM implementation of usecase.UserRepository.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements usecase.UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a user repository backed by db.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts u. A duplicate email is reported as usecase.ErrEmailAlreadyExists.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FilterByName matches a case-insensitive substring of the name.
func (r *userGorm) FilterByName(ctx context.Context, name string) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where(db.ContainsClause("name"), db.ContainsPattern(name)).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes only the fields set in changes and reloads the row.
func (r *userGorm) Update(ctx context.Context, id string, changes entity.Update) (*entity.User, error) {
	values := map[string]any{}
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.Email != nil {
		values["email"] = *changes.Email
	}
	if changes.Password != nil {
		values["password"] = *changes.Password
	}
	if changes.Avatar != nil {
		values["avatar"] = *changes.Avatar
	}
	if changes.Role != nil {
		values["role"] = *changes.Role
	}
	if changes.IsActive != nil {
		values["is_active"] = *changes.IsActive
	}

	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return nil, usecase.ErrEmailAlreadyExists
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// Deactivate is idempotent: an already inactive user still counts as found.
func (r *userGorm) Deactivate(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return usecase.ErrUserNotFound
	}
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("is_active", false).Error
}

// Delete removes the user. Project memberships go with it through the join table cascade.
func (r *userGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Package entity defines the domain entities for the user feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the organizational role of a user.
type Role string

const (
	// RoleDiretor has full administrative rights over users, sectors and projects.
	RoleDiretor Role = "DIRETOR"
	// RoleCoordenador manages only the projects they are a member of.
	RoleCoordenador Role = "COORDENADOR"
	// RoleMembro has self-service profile access and project membership only.
	RoleMembro Role = "MEMBRO"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDiretor, RoleCoordenador, RoleMembro:
		return true
	}
	return false
}

// User represents a registered person in the organization.
type User struct {
	// ID is a UUID assigned on creation.
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash. It is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	Avatar *string `gorm:"size:512" json:"avatar,omitempty"`

	Role Role `gorm:"size:20;not null;default:'MEMBRO'" json:"role"`

	IsActive bool `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsDiretor reports whether the user holds the DIRETOR role.
func (u *User) IsDiretor() bool {
	return u.Role == RoleDiretor
}

// Update lists the fields to change on a user. Nil fields are left untouched.
// Password, when set, must already be hashed.
type Update struct {
	Name     *string
	Email    *string
	Password *string
	Avatar   *string
	Role     *Role
	IsActive *bool
}

// IsEmpty reports whether no field is set.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil &&
		u.Avatar == nil && u.Role == nil && u.IsActive == nil
}

// Package entity defines the domain entities for the sector feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sector is an organizational grouping that owns projects.
type Sector struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description *string   `gorm:"size:1024" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none was set.
func (s *Sector) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Filter narrows a sector listing. Nil fields impose no constraint.
type Filter struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Update lists the fields to change on a sector. Nil fields are left untouched.
type Update struct {
	Name        *string
	Description *string
	IsActive    *bool
}

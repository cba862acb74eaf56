// Package entity defines the domain entities for the project feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sectorentity "teamflow_backend/internal/feature/sector/domain/entity"
	userentity "teamflow_backend/internal/feature/user/domain/entity"
)

// Status is the lifecycle stage of a project.
// Any status may follow any other; the value is data, not a workflow.
type Status string

const (
	StatusPlanejamento Status = "PLANEJAMENTO"
	StatusEmAndamento  Status = "EM_ANDAMENTO"
	StatusPausado      Status = "PAUSADO"
	StatusConcluido    Status = "CONCLUIDO"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanejamento, StatusEmAndamento, StatusPausado, StatusConcluido:
		return true
	}
	return false
}

// Project belongs to one sector and has a set of member users.
// Name is unique among the active projects of a sector.
type Project struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:255;not null;uniqueIndex:idx_projects_sector_name,where:is_active = true" json:"name"`
	Description *string    `gorm:"size:2048" json:"description"`
	Status      Status     `gorm:"size:20;not null;default:'PLANEJAMENTO'" json:"status"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"isActive"`
	StartDate   *time.Time `json:"startDate"`
	Objective   *string    `gorm:"size:2048" json:"objective"`

	SectorID string               `gorm:"size:36;not null;uniqueIndex:idx_projects_sector_name,where:is_active = true" json:"sectorId"`
	Sector   *sectorentity.Sector `gorm:"foreignKey:SectorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Members []userentity.User `gorm:"many2many:project_members;constraint:OnDelete:CASCADE" json:"members"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none was set.
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasMember reports whether userID is in the member set.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Update lists the fields to change on a project. Nil fields are left untouched.
// A non-nil MemberIDs replaces the whole member set.
type Update struct {
	Name        *string
	Description *string
	Status      *Status
	IsActive    *bool
	StartDate   *time.Time
	Objective   *string
	SectorID    *string
	MemberIDs   *[]string
}

// Page is one slice of the active project listing.
type Page struct {
	Items    []Project `json:"items"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Total    int64     `json:"total"`
}

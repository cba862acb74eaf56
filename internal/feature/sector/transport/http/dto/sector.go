// Package dto defines data transfer objects for the sector feature's HTTP transport layer.
package dto

import (
	"time"

	"teamflow_backend/internal/feature/sector/domain/entity"
)

// CreateSectorReq is the body of POST /sectors.
type CreateSectorReq struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
}

// UpdateSectorReq is the body of PUT /sectors/:id. Absent fields are left unchanged.
type UpdateSectorReq struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
	IsActive    *bool   `json:"isActive"`
}

// SectorFilterQuery holds the optional filters of GET /sectors.
type SectorFilterQuery struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	IsActive    *bool   `form:"isActive"`
}

// SectorResponse is the public representation of a sector.
type SectorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewSectorResponse converts a domain sector.
func NewSectorResponse(s *entity.Sector) SectorResponse {
	return SectorResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// NewSectorListResponse converts a slice of sectors, never returning nil.
func NewSectorListResponse(sectors []entity.Sector) []SectorResponse {
	out := make([]SectorResponse, 0, len(sectors))
	for i := range sectors {
		out = append(out, NewSectorResponse(&sectors[i]))
	}
	return out
}

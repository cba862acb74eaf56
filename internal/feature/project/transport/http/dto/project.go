// Package dto defines data transfer objects for the project feature's HTTP transport layer.
package dto

import (
	"time"

	"teamflow_backend/internal/feature/project/domain/entity"
)

// CreateProjectReq is the body of POST /projects.
type CreateProjectReq struct {
	Name        string     `json:"name" binding:"required,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2048"`
	Status      string     `json:"status" binding:"omitempty,oneof=PLANEJAMENTO EM_ANDAMENTO PAUSADO CONCLUIDO"`
	StartDate   *time.Time `json:"startDate"`
	Objective   *string    `json:"objective" binding:"omitempty,max=2048"`
	SectorID    string     `json:"sectorId" binding:"required,uuid"`
	MemberIDs   []string   `json:"members" binding:"omitempty,dive,uuid"`
}

// UpdateProjectReq is the body of PUT /projects/:id. Absent fields are left unchanged;
// a present members array replaces the member set.
type UpdateProjectReq struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2048"`
	Status      *string    `json:"status" binding:"omitempty,oneof=PLANEJAMENTO EM_ANDAMENTO PAUSADO CONCLUIDO"`
	IsActive    *bool      `json:"isActive"`
	StartDate   *time.Time `json:"startDate"`
	Objective   *string    `json:"objective" binding:"omitempty,max=2048"`
	SectorID    *string    `json:"sectorId" binding:"omitempty,uuid"`
	MemberIDs   *[]string  `json:"members" binding:"omitempty,dive,uuid"`
}

// PageQuery holds the paging parameters of GET /projects.
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// MemberResponse is the summary of a project member.
type MemberResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProjectResponse is the public representation of a project.
type ProjectResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Status      string           `json:"status"`
	IsActive    bool             `json:"isActive"`
	StartDate   *time.Time       `json:"startDate"`
	Objective   *string          `json:"objective"`
	SectorID    string           `json:"sectorId"`
	Members     []MemberResponse `json:"members"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// PageResponse is one page of GET /projects.
type PageResponse struct {
	Items    []ProjectResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Total    int64             `json:"total"`
}

// HasMembersResponse is the body of GET /projects/:id/members/exists.
type HasMembersResponse struct {
	HasMembers bool `json:"hasMembers"`
}

// NewProjectResponse converts a domain project.
func NewProjectResponse(p *entity.Project) ProjectResponse {
	members := make([]MemberResponse, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, MemberResponse{ID: m.ID, Name: m.Name, Email: m.Email, Role: string(m.Role)})
	}
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		IsActive:    p.IsActive,
		StartDate:   p.StartDate,
		Objective:   p.Objective,
		SectorID:    p.SectorID,
		Members:     members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProjectListResponse converts a slice of projects, never returning nil.
func NewProjectListResponse(projects []entity.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}

// NewPageResponse converts a page of projects.
func NewPageResponse(p *entity.Page) PageResponse {
	return PageResponse{
		Items:    NewProjectListResponse(p.Items),
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    p.Total,
	}
}

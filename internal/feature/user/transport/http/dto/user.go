// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

import (
	"time"

	"teamflow_backend/internal/feature/user/domain/entity"
)

// CreateUserReq is the body of POST /users.
type CreateUserReq struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=512"`
	Role     string  `json:"role" binding:"omitempty,oneof=DIRETOR COORDENADOR MEMBRO"`
}

// UpdateUserReq is the body of PUT /users/:id. Absent fields are left unchanged.
type UpdateUserReq struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=512"`
	Role     *string `json:"role" binding:"omitempty,oneof=DIRETOR COORDENADOR MEMBRO"`
	IsActive *bool   `json:"isActive"`
}

// UpdateProfileReq is the body of PUT /profile.
type UpdateProfileReq struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=512"`
}

// ListUsersQuery holds the optional name filter of GET /users.
type ListUsersQuery struct {
	Name string `form:"name"`
}

// UserResponse is the public representation of a user. It never carries the password.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse converts a slice of users, never returning nil.
func NewUserListResponse(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

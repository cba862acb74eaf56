// Package handler provides the HTTP handlers for the user feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamflow_backend/internal/feature/user/domain/entity"
	"teamflow_backend/internal/feature/user/transport/http/dto"
	"teamflow_backend/internal/feature/user/usecase"
	"teamflow_backend/internal/platform/http/respond"
	jwtmw "teamflow_backend/internal/platform/jwt"
)

// UserUsecase defines the user operations the handler depends on.
// Following Go convention, the interface is defined by the consumer (handler).
type UserUsecase interface {
	CreateUser(ctx context.Context, in usecase.CreateInput) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	ListUsers(ctx context.Context, name string) ([]entity.User, error)
	UpdateUser(ctx context.Context, id string, in usecase.UpdateInput) (*entity.User, error)
	UpdateProfile(ctx context.Context, actorID string, in usecase.ProfileInput) (*entity.User, error)
	DeactivateUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler handles the /users and /profile endpoints.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), usecase.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "actor_id", jwtmw.UserID(c))
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// List handles GET /users with an optional ?name= filter.
func (h *UserHandler) List(c *gin.Context) {
	var q dto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BadRequest(c, err)
		return
	}
	users, err := h.users.ListUsers(c.Request.Context(), q.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	in := usecase.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.users.UpdateUser(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Deactivate handles PATCH /users/:id/deactivate.
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.users.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Profile handles GET /profile and returns the authenticated user.
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.GetUserByID(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateProfile handles PUT /profile. Role and active flag cannot be changed here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), jwtmw.UserID(c), usecase.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

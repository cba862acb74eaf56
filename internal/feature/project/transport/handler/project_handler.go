// Package handler provides the HTTP handlers for the project feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teamflow_backend/internal/feature/project/domain/entity"
	"teamflow_backend/internal/feature/project/domain/policy"
	"teamflow_backend/internal/feature/project/transport/http/dto"
	"teamflow_backend/internal/feature/project/usecase"
	userentity "teamflow_backend/internal/feature/user/domain/entity"
	"teamflow_backend/internal/platform/http/respond"
	jwtmw "teamflow_backend/internal/platform/jwt"
)

var (
	errInvalidStatus = errors.New("status must be one of PLANEJAMENTO, EM_ANDAMENTO, PAUSADO, CONCLUIDO")
	errInvalidBool   = errors.New("value must be true or false")
)

// ProjectUsecase defines the project operations the handler depends on.
type ProjectUsecase interface {
	CreateProject(ctx context.Context, in usecase.CreateInput) (*entity.Project, error)
	GetAllProjects(ctx context.Context, page, pageSize int) (*entity.Page, error)
	GetProjectByID(ctx context.Context, id string) (*entity.Project, error)
	UpdateProject(ctx context.Context, id string, changes entity.Update, actor policy.Actor) (*entity.Project, error)
	DeactivateProject(ctx context.Context, id string) error
	RemoveMember(ctx context.Context, projectID, userID string, actor policy.Actor) error
	VerifyIfProjectHasMembers(ctx context.Context, id string) (bool, error)
	DeleteProject(ctx context.Context, id string) error
	FilterProjectsByStatus(ctx context.Context, status entity.Status) ([]entity.Project, error)
	FilterProjectsBySector(ctx context.Context, sectorID string) ([]entity.Project, error)
	FilterProjectsByUser(ctx context.Context, userID string) ([]entity.Project, error)
	FilterProjectsByName(ctx context.Context, name string) ([]entity.Project, error)
	FilterProjectsByIsActive(ctx context.Context, isActive bool) ([]entity.Project, error)
	ListMyProjects(ctx context.Context, userID string, actor policy.Actor) ([]entity.Project, error)
}

// ProjectHandler handles the /projects endpoints and GET /users/:id/projects.
type ProjectHandler struct {
	projects ProjectUsecase
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projects ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func actorFrom(c *gin.Context) policy.Actor {
	return policy.Actor{ID: jwtmw.UserID(c), Role: userentity.Role(jwtmw.Role(c))}
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	project, err := h.projects.CreateProject(c.Request.Context(), usecase.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.Status(req.Status),
		StartDate:   req.StartDate,
		Objective:   req.Objective,
		SectorID:    req.SectorID,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProjectResponse(project))
}

// List handles GET /projects?page=&pageSize=.
func (h *ProjectHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BadRequest(c, err)
		return
	}
	page, err := h.projects.GetAllProjects(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProjectResponse(project))
}

// Update handles PUT /projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	changes := entity.Update{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		StartDate:   req.StartDate,
		Objective:   req.Objective,
		SectorID:    req.SectorID,
		MemberIDs:   req.MemberIDs,
	}
	if req.Status != nil {
		status := entity.Status(*req.Status)
		changes.Status = &status
	}

	project, err := h.projects.UpdateProject(c.Request.Context(), c.Param("id"), changes, actorFrom(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProjectResponse(project))
}

// Deactivate handles PATCH /projects/:id/deactivate.
func (h *ProjectHandler) Deactivate(c *gin.Context) {
	if err := h.projects.DeactivateProject(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /projects/:id. A project with members answers 400.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HasMembers handles GET /projects/:id/members/exists.
func (h *ProjectHandler) HasMembers(c *gin.Context) {
	has, err := h.projects.VerifyIfProjectHasMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.HasMembersResponse{HasMembers: has})
}

// RemoveMember handles DELETE /projects/:id/members/:userId.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	err := h.projects.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userId"), actorFrom(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FilterByStatus handles GET /projects/filter/status/:value.
func (h *ProjectHandler) FilterByStatus(c *gin.Context) {
	status := entity.Status(c.Param("value"))
	if !status.Valid() {
		respond.BadRequest(c, errInvalidStatus)
		return
	}
	h.writeList(c)(h.projects.FilterProjectsByStatus(c.Request.Context(), status))
}

// FilterBySector handles GET /projects/filter/sector/:value.
func (h *ProjectHandler) FilterBySector(c *gin.Context) {
	h.writeList(c)(h.projects.FilterProjectsBySector(c.Request.Context(), c.Param("value")))
}

// FilterByUser handles GET /projects/filter/user/:value.
func (h *ProjectHandler) FilterByUser(c *gin.Context) {
	h.writeList(c)(h.projects.FilterProjectsByUser(c.Request.Context(), c.Param("value")))
}

// FilterByName handles GET /projects/filter/name/:value.
func (h *ProjectHandler) FilterByName(c *gin.Context) {
	h.writeList(c)(h.projects.FilterProjectsByName(c.Request.Context(), c.Param("value")))
}

// FilterByIsActive handles GET /projects/filter/active/:value.
func (h *ProjectHandler) FilterByIsActive(c *gin.Context) {
	active, err := strconv.ParseBool(c.Param("value"))
	if err != nil {
		respond.BadRequest(c, errInvalidBool)
		return
	}
	h.writeList(c)(h.projects.FilterProjectsByIsActive(c.Request.Context(), active))
}

// ListUserProjects handles GET /users/:id/projects. Users may only list their own.
func (h *ProjectHandler) ListUserProjects(c *gin.Context) {
	h.writeList(c)(h.projects.ListMyProjects(c.Request.Context(), c.Param("id"), actorFrom(c)))
}

func (h *ProjectHandler) writeList(c *gin.Context) func([]entity.Project, error) {
	return func(projects []entity.Project, err error) {
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewProjectListResponse(projects))
	}
}

// Package handler provides the HTTP handlers for the sector feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamflow_backend/internal/feature/sector/domain/entity"
	"teamflow_backend/internal/feature/sector/transport/http/dto"
	"teamflow_backend/internal/feature/sector/usecase"
	"teamflow_backend/internal/platform/http/respond"
)

// SectorUsecase defines the sector operations the handler depends on.
type SectorUsecase interface {
	CreateSector(ctx context.Context, in usecase.CreateInput) (*entity.Sector, error)
	UpdateSector(ctx context.Context, id string, changes entity.Update) (*entity.Sector, error)
	DeleteSector(ctx context.Context, id string) error
	GetSectorByID(ctx context.Context, id string) (*entity.Sector, error)
	ListOrFilter(ctx context.Context, filter entity.Filter) ([]entity.Sector, error)
}

// SectorHandler handles the /sectors endpoints.
type SectorHandler struct {
	sectors SectorUsecase
}

// NewSectorHandler creates a SectorHandler.
func NewSectorHandler(sectors SectorUsecase) *SectorHandler {
	return &SectorHandler{sectors: sectors}
}

// Create handles POST /sectors.
func (h *SectorHandler) Create(c *gin.Context) {
	var req dto.CreateSectorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	sector, err := h.sectors.CreateSector(c.Request.Context(), usecase.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSectorResponse(sector))
}

// List handles GET /sectors?name=&description=&isActive=.
func (h *SectorHandler) List(c *gin.Context) {
	var q dto.SectorFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BadRequest(c, err)
		return
	}
	sectors, err := h.sectors.ListOrFilter(c.Request.Context(), entity.Filter{
		Name:        q.Name,
		Description: q.Description,
		IsActive:    q.IsActive,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSectorListResponse(sectors))
}

// Get handles GET /sectors/:id.
func (h *SectorHandler) Get(c *gin.Context) {
	sector, err := h.sectors.GetSectorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSectorResponse(sector))
}

// Update handles PUT /sectors/:id.
func (h *SectorHandler) Update(c *gin.Context) {
	var req dto.UpdateSectorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	sector, err := h.sectors.UpdateSector(c.Request.Context(), c.Param("id"), entity.Update{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSectorResponse(sector))
}

// Delete handles DELETE /sectors/:id. A sector that still has projects answers 400.
func (h *SectorHandler) Delete(c *gin.Context) {
	if err := h.sectors.DeleteSector(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

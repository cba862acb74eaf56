package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"teamflow_backend/internal/feature/sector/domain/entity"
)

// SectorRepository abstracts sector persistence.
type SectorRepository interface {
	// Create returns ErrSectorNameExists on a duplicate name.
	Create(ctx context.Context, sector *entity.Sector) error

	// Update returns ErrSectorNotFound when no sector has id.
	Update(ctx context.Context, id string, changes entity.Update) (*entity.Sector, error)

	// Delete returns ErrSectorNotFound when nothing was deleted and ErrSectorInUse
	// when projects still reference the sector.
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*entity.Sector, error)

	// FindByName matches the name case-insensitively and returns ErrSectorNotFound on a miss.
	FindByName(ctx context.Context, name string) (*entity.Sector, error)

	// ListOrFilter returns the sectors matching every predicate set in filter, ordered by name.
	// An empty filter lists all sectors.
	ListOrFilter(ctx context.Context, filter entity.Filter) ([]entity.Sector, error)
}

// CreateInput is the data needed to create a sector.
type CreateInput struct {
	Name        string
	Description *string
}

// SectorUsecase implements sector management.
type SectorUsecase struct {
	sectors SectorRepository
}

// NewSectorUsecase creates a SectorUsecase.
func NewSectorUsecase(sectors SectorRepository) *SectorUsecase {
	return &SectorUsecase{sectors: sectors}
}

// CreateSector creates an active sector with a name no other sector uses.
func (u *SectorUsecase) CreateSector(ctx context.Context, in CreateInput) (*entity.Sector, error) {
	name := strings.TrimSpace(in.Name)
	if err := u.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	sector := &entity.Sector{Name: name, Description: in.Description, IsActive: true}
	if err := u.sectors.Create(ctx, sector); err != nil {
		return nil, err
	}
	slog.Info("sector created", "sector_id", sector.ID, "name", sector.Name)
	return sector, nil
}

// UpdateSector applies changes. Renaming onto another sector's name is a conflict.
func (u *SectorUsecase) UpdateSector(ctx context.Context, id string, changes entity.Update) (*entity.Sector, error) {
	if _, err := u.sectors.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		changes.Name = &name
		if err := u.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}

	sector, err := u.sectors.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	slog.Info("sector updated", "sector_id", id)
	return sector, nil
}

// DeleteSector removes a sector that no project references.
func (u *SectorUsecase) DeleteSector(ctx context.Context, id string) error {
	if err := u.sectors.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("sector deleted", "sector_id", id)
	return nil
}

// GetSectorByID returns the sector with id.
func (u *SectorUsecase) GetSectorByID(ctx context.Context, id string) (*entity.Sector, error) {
	return u.sectors.FindByID(ctx, id)
}

// ListOrFilter lists sectors, narrowed by any predicates set in filter.
// Blank text predicates are ignored.
func (u *SectorUsecase) ListOrFilter(ctx context.Context, filter entity.Filter) ([]entity.Sector, error) {
	filter.Name = trimOrNil(filter.Name)
	filter.Description = trimOrNil(filter.Description)
	return u.sectors.ListOrFilter(ctx, filter)
}

// ensureNameFree fails with ErrSectorNameExists if a sector other than selfID has name.
func (u *SectorUsecase) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := u.sectors.FindByName(ctx, name)
	switch {
	case errors.Is(err, ErrSectorNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return ErrSectorNameExists
	}
	return nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

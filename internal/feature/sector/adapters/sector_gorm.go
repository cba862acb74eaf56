// Package adapters provides the repository implementations for the sector feature.
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"teamflow_backend/internal/feature/sector/domain/entity"
	"teamflow_backend/internal/feature/sector/usecase"
	"teamflow_backend/internal/platform/db"
)

// sectorGorm is the GORM implementation of usecase.SectorRepository.
type sectorGorm struct {
	db *gorm.DB
}

var _ usecase.SectorRepository = (*sectorGorm)(nil)

// NewSectorGorm creates a sector repository backed by db.
func NewSectorGorm(db *gorm.DB) *sectorGorm {
	return &sectorGorm{db: db}
}

// Indexes makes sector names unique regardless of case.
var Indexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_sectors_name_ci ON sectors (LOWER(name))",
}

func (r *sectorGorm) Create(ctx context.Context, s *entity.Sector) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrSectorNameExists
		}
		return err
	}
	return nil
}

func (r *sectorGorm) Update(ctx context.Context, id string, changes entity.Update) (*entity.Sector, error) {
	values := map[string]any{}
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.Description != nil {
		values["description"] = *changes.Description
	}
	if changes.IsActive != nil {
		values["is_active"] = *changes.IsActive
	}

	res := r.db.WithContext(ctx).Model(&entity.Sector{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return nil, usecase.ErrSectorNameExists
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrSectorNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete relies on the projects foreign key (ON DELETE RESTRICT) to refuse referenced sectors.
func (r *sectorGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Sector{})
	if res.Error != nil {
		if db.IsForeignKeyViolation(res.Error) {
			return usecase.ErrSectorInUse
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSectorNotFound
	}
	return nil
}

func (r *sectorGorm) FindByID(ctx context.Context, id string) (*entity.Sector, error) {
	var s entity.Sector
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrSectorNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sectorGorm) FindByName(ctx context.Context, name string) (*entity.Sector, error) {
	var s entity.Sector
	err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&s).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrSectorNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListOrFilter ANDs the predicates set in filter. Text predicates match a case-insensitive substring.
func (r *sectorGorm) ListOrFilter(ctx context.Context, filter entity.Filter) ([]entity.Sector, error) {
	q := r.db.WithContext(ctx).Model(&entity.Sector{})
	if filter.Name != nil {
		q = q.Where(db.ContainsClause("name"), db.ContainsPattern(*filter.Name))
	}
	if filter.Description != nil {
		q = q.Where(db.ContainsClause("description"), db.ContainsPattern(*filter.Description))
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	var sectors []entity.Sector
	if err := q.Order("name ASC").Find(&sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}

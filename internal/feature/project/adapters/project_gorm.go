// Package adapters provides the repository implementations for the project feature.
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"teamflow_backend/internal/feature/project/domain/entity"
	"teamflow_backend/internal/feature/project/usecase"
	"teamflow_backend/internal/platform/db"
)

// projectMember is a row of the many2many join table created for entity.Project.Members.
// Writing it directly keeps unknown user ids a foreign-key error instead of an implicit user insert.
type projectMember struct {
	ProjectID string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"primaryKey;size:36"`
}

func (projectMember) TableName() string { return "project_members" }

// projectGorm is the GORM implementation of usecase.ProjectRepository.
type projectGorm struct {
	db *gorm.DB
}

var _ usecase.ProjectRepository = (*projectGorm)(nil)

// NewProjectGorm creates a project repository backed by db.
func NewProjectGorm(db *gorm.DB) *projectGorm {
	return &projectGorm{db: db}
}

// translate maps constraint violations on project writes to domain errors.
func translate(err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return usecase.ErrProjectNameExists
	case db.IsForeignKeyViolation(err):
		return usecase.ErrSectorOrMemberNotFound
	}
	return err
}

// Indexes makes active project names unique per sector regardless of case.
var Indexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_sector_name_ci ON projects (sector_id, LOWER(name)) WHERE is_active = true",
}

func withMembers(q *gorm.DB) *gorm.DB {
	return q.Preload("Members", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("users.name ASC")
	})
}

func (r *projectGorm) Create(ctx context.Context, p *entity.Project, memberIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(p).Error; err != nil {
			return translate(err)
		}
		return insertMembers(tx, p.ID, memberIDs)
	})
	if err != nil {
		return err
	}

	loaded, err := r.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *loaded
	return nil
}

func insertMembers(tx *gorm.DB, projectID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]projectMember, 0, len(userIDs))
	for _, uid := range userIDs {
		rows = append(rows, projectMember{ProjectID: projectID, UserID: uid})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update writes the set fields and, when MemberIDs is set, replaces the member set in the same transaction.
func (r *projectGorm) Update(ctx context.Context, id string, changes entity.Update) (*entity.Project, error) {
	values := map[string]any{}
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.Description != nil {
		values["description"] = *changes.Description
	}
	if changes.Status != nil {
		values["status"] = *changes.Status
	}
	if changes.IsActive != nil {
		values["is_active"] = *changes.IsActive
	}
	if changes.StartDate != nil {
		values["start_date"] = *changes.StartDate
	}
	if changes.Objective != nil {
		values["objective"] = *changes.Objective
	}
	if changes.SectorID != nil {
		values["sector_id"] = *changes.SectorID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Project{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return usecase.ErrProjectNotFound
		}
		if changes.MemberIDs == nil {
			return nil
		}
		if err := tx.Where("project_id = ?", id).Delete(&projectMember{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, id, *changes.MemberIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the project. Join rows, if any, go with it through the cascade.
func (r *projectGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProjectNotFound
	}
	return nil
}

func (r *projectGorm) Deactivate(ctx context.Context, id string) error {
	if err := r.ensureExists(ctx, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&entity.Project{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *projectGorm) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var p entity.Project
	if err := withMembers(r.db.WithContext(ctx)).Where("id = ?", id).First(&p).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectGorm) FindAll(ctx context.Context, page, pageSize int) ([]entity.Project, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Project{}).Where("is_active = ?", true).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var projects []entity.Project
	err = withMembers(r.db.WithContext(ctx)).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectGorm) FindActiveByNameInSector(ctx context.Context, name, sectorID string) (*entity.Project, error) {
	var p entity.Project
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND sector_id = ? AND is_active = ?", strings.ToLower(name), sectorID, true).
		First(&p).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectGorm) FilterByStatus(ctx context.Context, status entity.Status) ([]entity.Project, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("projects.status = ?", status) })
}

func (r *projectGorm) FilterBySector(ctx context.Context, sectorID string) ([]entity.Project, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("projects.sector_id = ?", sectorID) })
}

func (r *projectGorm) FilterByUser(ctx context.Context, userID string) ([]entity.Project, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("projects.id IN (?)",
			r.db.Model(&projectMember{}).Select("project_id").Where("user_id = ?", userID))
	})
}

func (r *projectGorm) FilterByName(ctx context.Context, name string) ([]entity.Project, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(db.ContainsClause("projects.name"), db.ContainsPattern(name))
	})
}

func (r *projectGorm) FilterByIsActive(ctx context.Context, isActive bool) ([]entity.Project, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("projects.is_active = ?", isActive) })
}

// list runs a filtered read, newest first, with members preloaded.
func (r *projectGorm) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]entity.Project, error) {
	var projects []entity.Project
	err := withMembers(r.db.WithContext(ctx)).
		Scopes(scope).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectGorm) RemoveMember(ctx context.Context, projectID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&projectMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrMemberNotInProject
	}
	return nil
}

func (r *projectGorm) HasMembers(ctx context.Context, id string) (bool, error) {
	if err := r.ensureExists(ctx, id); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&projectMember{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *projectGorm) ensureExists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return usecase.ErrProjectNotFound
	}
	return nil
}

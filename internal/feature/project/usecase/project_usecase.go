package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"teamflow_backend/internal/feature/project/domain/entity"
	"teamflow_backend/internal/feature/project/domain/policy"
	userentity "teamflow_backend/internal/feature/user/domain/entity"
)

// Paging bounds for GetAllProjects.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProjectRepository abstracts project persistence. Every read preloads members.
type ProjectRepository interface {
	// Create inserts project and links memberIDs. It returns ErrProjectNameExists on a
	// duplicate active name in the sector and ErrSectorOrMemberNotFound on a dangling reference.
	Create(ctx context.Context, project *entity.Project, memberIDs []string) error

	// Update applies changes and returns the updated project, with the same error mapping as Create.
	Update(ctx context.Context, id string, changes entity.Update) (*entity.Project, error)

	// Delete removes the project. It returns ErrProjectNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error

	// Deactivate sets is_active to false and keeps the members.
	Deactivate(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*entity.Project, error)

	// FindAll returns one page of active projects, newest first, and the active total.
	FindAll(ctx context.Context, page, pageSize int) ([]entity.Project, int64, error)

	// FindActiveByNameInSector matches the name case-insensitively and returns ErrProjectNotFound on a miss.
	FindActiveByNameInSector(ctx context.Context, name, sectorID string) (*entity.Project, error)

	FilterByStatus(ctx context.Context, status entity.Status) ([]entity.Project, error)
	FilterBySector(ctx context.Context, sectorID string) ([]entity.Project, error)
	FilterByUser(ctx context.Context, userID string) ([]entity.Project, error)
	FilterByName(ctx context.Context, name string) ([]entity.Project, error)
	FilterByIsActive(ctx context.Context, isActive bool) ([]entity.Project, error)

	// RemoveMember unlinks userID from the project.
	RemoveMember(ctx context.Context, projectID, userID string) error

	// HasMembers reports whether the project has at least one member.
	HasMembers(ctx context.Context, id string) (bool, error)
}

// UserFinder loads the target of a member removal.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*userentity.User, error)
}

// CreateInput is the data needed to create a project. An empty Status defaults to PLANEJAMENTO.
type CreateInput struct {
	Name        string
	Description *string
	Status      entity.Status
	StartDate   *time.Time
	Objective   *string
	SectorID    string
	MemberIDs   []string
}

// ProjectUsecase implements project management and its authorization rules.
type ProjectUsecase struct {
	projects ProjectRepository
	users    UserFinder
}

// NewProjectUsecase creates a ProjectUsecase.
func NewProjectUsecase(projects ProjectRepository, users UserFinder) *ProjectUsecase {
	return &ProjectUsecase{projects: projects, users: users}
}

// CreateProject creates an active project. The name must be free among the active projects of the sector.
func (u *ProjectUsecase) CreateProject(ctx context.Context, in CreateInput) (*entity.Project, error) {
	name := strings.TrimSpace(in.Name)
	if err := u.ensureNameFree(ctx, name, in.SectorID, ""); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.StatusPlanejamento
	}

	project := &entity.Project{
		Name:        name,
		Description: in.Description,
		Status:      status,
		IsActive:    true,
		StartDate:   in.StartDate,
		Objective:   in.Objective,
		SectorID:    in.SectorID,
	}
	if err := u.projects.Create(ctx, project, dedupe(in.MemberIDs)); err != nil {
		return nil, err
	}
	slog.Info("project created", "project_id", project.ID, "sector_id", project.SectorID)
	return project, nil
}

// GetAllProjects returns a page of active projects. page < 0 is treated as 0;
// pageSize <= 0 becomes DefaultPageSize and is capped at MaxPageSize.
func (u *ProjectUsecase) GetAllProjects(ctx context.Context, page, pageSize int) (*entity.Page, error) {
	page, pageSize = normalizePage(page, pageSize)
	items, total, err := u.projects.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Project{}
	}
	return &entity.Page{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

// GetProjectByID returns the project with its members.
func (u *ProjectUsecase) GetProjectByID(ctx context.Context, id string) (*entity.Project, error) {
	return u.projects.FindByID(ctx, id)
}

// UpdateProject applies changes on behalf of actor.
// A COORDENADOR must be a member of the project; status changes are not restricted.
func (u *ProjectUsecase) UpdateProject(ctx context.Context, id string, changes entity.Update, actor policy.Actor) (*entity.Project, error) {
	current, err := u.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdate(actor, current); err != nil {
		slog.Warn("project update denied", "project_id", id, "actor_id", actor.ID, "role", actor.Role)
		return nil, err
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		changes.Name = &name
	}
	if changes.MemberIDs != nil {
		ids := dedupe(*changes.MemberIDs)
		changes.MemberIDs = &ids
		if err := policy.CanReplaceMembers(actor, current, ids); err != nil {
			slog.Warn("project member replacement denied", "project_id", id, "actor_id", actor.ID, "role", actor.Role)
			return nil, err
		}
	}

	// The name must stay free whenever the result is active and its name or sector moves.
	name, sectorID, active := current.Name, current.SectorID, current.IsActive
	if changes.Name != nil {
		name = *changes.Name
	}
	if changes.SectorID != nil {
		sectorID = *changes.SectorID
	}
	if changes.IsActive != nil {
		active = *changes.IsActive
	}
	moved := changes.Name != nil || changes.SectorID != nil || (changes.IsActive != nil && !current.IsActive)
	if active && moved {
		if err := u.ensureNameFree(ctx, name, sectorID, id); err != nil {
			return nil, err
		}
	}

	updated, err := u.projects.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	slog.Info("project updated", "project_id", id, "actor_id", actor.ID)
	return updated, nil
}

// DeactivateProject marks the project inactive. Members and history are kept.
func (u *ProjectUsecase) DeactivateProject(ctx context.Context, id string) error {
	if err := u.projects.Deactivate(ctx, id); err != nil {
		return err
	}
	slog.Info("project deactivated", "project_id", id)
	return nil
}

// RemoveMember unlinks userID from the project on behalf of actor.
// A COORDENADOR must be a member and may never remove a DIRETOR.
func (u *ProjectUsecase) RemoveMember(ctx context.Context, projectID, userID string, actor policy.Actor) error {
	project, err := u.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	target, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := policy.CanRemoveMember(actor, project, target); err != nil {
		slog.Warn("member removal denied", "project_id", projectID, "target_id", userID, "actor_id", actor.ID, "role", actor.Role)
		return err
	}
	if !project.HasMember(userID) {
		return ErrMemberNotInProject
	}

	if err := u.projects.RemoveMember(ctx, projectID, userID); err != nil {
		return err
	}
	slog.Info("project member removed", "project_id", projectID, "target_id", userID, "actor_id", actor.ID)
	return nil
}

// VerifyIfProjectHasMembers reports whether the project has any member.
func (u *ProjectUsecase) VerifyIfProjectHasMembers(ctx context.Context, id string) (bool, error) {
	return u.projects.HasMembers(ctx, id)
}

// DeleteProject hard-deletes a project that has no members.
func (u *ProjectUsecase) DeleteProject(ctx context.Context, id string) error {
	hasMembers, err := u.projects.HasMembers(ctx, id)
	if err != nil {
		return err
	}
	if hasMembers {
		return ErrProjectHasMembers
	}
	if err := u.projects.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("project deleted", "project_id", id)
	return nil
}

func (u *ProjectUsecase) FilterProjectsByStatus(ctx context.Context, status entity.Status) ([]entity.Project, error) {
	return u.projects.FilterByStatus(ctx, status)
}

func (u *ProjectUsecase) FilterProjectsBySector(ctx context.Context, sectorID string) ([]entity.Project, error) {
	return u.projects.FilterBySector(ctx, sectorID)
}

func (u *ProjectUsecase) FilterProjectsByUser(ctx context.Context, userID string) ([]entity.Project, error) {
	return u.projects.FilterByUser(ctx, userID)
}

// FilterProjectsByName matches a case-insensitive substring of the name.
func (u *ProjectUsecase) FilterProjectsByName(ctx context.Context, name string) ([]entity.Project, error) {
	return u.projects.FilterByName(ctx, strings.TrimSpace(name))
}

func (u *ProjectUsecase) FilterProjectsByIsActive(ctx context.Context, isActive bool) ([]entity.Project, error) {
	return u.projects.FilterByIsActive(ctx, isActive)
}

// ListMyProjects returns the projects userID belongs to. Only the user themself may ask.
func (u *ProjectUsecase) ListMyProjects(ctx context.Context, userID string, actor policy.Actor) ([]entity.Project, error) {
	if err := policy.CanListProjectsOf(actor, userID); err != nil {
		return nil, err
	}
	return u.projects.FilterByUser(ctx, userID)
}

// ensureNameFree fails with ErrProjectNameExists if an active project other than selfID
// already has name in sectorID.
func (u *ProjectUsecase) ensureNameFree(ctx context.Context, name, sectorID, selfID string) error {
	existing, err := u.projects.FindActiveByNameInSector(ctx, name, sectorID)
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return ErrProjectNameExists
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// dedupe drops repeated and blank ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

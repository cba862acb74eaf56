package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamflow_backend/internal/feature/project/domain/entity"
	"teamflow_backend/internal/feature/project/domain/policy"
	userentity "teamflow_backend/internal/feature/user/domain/entity"
	"teamflow_backend/internal/shared/apperr"
)

// mockProjectRepository is a mock implementation of ProjectRepository.
type mockProjectRepository struct {
	CreateFunc                   func(ctx context.Context, p *entity.Project, memberIDs []string) error
	UpdateFunc                   func(ctx context.Context, id string, changes entity.Update) (*entity.Project, error)
	DeleteFunc                   func(ctx context.Context, id string) error
	DeactivateFunc               func(ctx context.Context, id string) error
	FindByIDFunc                 func(ctx context.Context, id string) (*entity.Project, error)
	FindAllFunc                  func(ctx context.Context, page, pageSize int) ([]entity.Project, int64, error)
	FindActiveByNameInSectorFunc func(ctx context.Context, name, sectorID string) (*entity.Project, error)
	FilterByStatusFunc           func(ctx context.Context, status entity.Status) ([]entity.Project, error)
	FilterBySectorFunc           func(ctx context.Context, sectorID string) ([]entity.Project, error)
	FilterByUserFunc             func(ctx context.Context, userID string) ([]entity.Project, error)
	FilterByNameFunc             func(ctx context.Context, name string) ([]entity.Project, error)
	FilterByIsActiveFunc         func(ctx context.Context, isActive bool) ([]entity.Project, error)
	RemoveMemberFunc             func(ctx context.Context, projectID, userID string) error
	HasMembersFunc               func(ctx context.Context, id string) (bool, error)
}

func (m *mockProjectRepository) Create(ctx context.Context, p *entity.Project, memberIDs []string) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p, memberIDs)
	}
	p.ID = "p-1"
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, id string, changes entity.Update) (*entity.Project, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, changes)
	}
	return &entity.Project{ID: id}, nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepository) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrProjectNotFound
}

func (m *mockProjectRepository) FindAll(ctx context.Context, page, pageSize int) ([]entity.Project, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockProjectRepository) FindActiveByNameInSector(ctx context.Context, name, sectorID string) (*entity.Project, error) {
	if m.FindActiveByNameInSectorFunc != nil {
		return m.FindActiveByNameInSectorFunc(ctx, name, sectorID)
	}
	return nil, ErrProjectNotFound
}

func (m *mockProjectRepository) FilterByStatus(ctx context.Context, status entity.Status) ([]entity.Project, error) {
	if m.FilterByStatusFunc != nil {
		return m.FilterByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockProjectRepository) FilterBySector(ctx context.Context, sectorID string) ([]entity.Project, error) {
	if m.FilterBySectorFunc != nil {
		return m.FilterBySectorFunc(ctx, sectorID)
	}
	return nil, nil
}

func (m *mockProjectRepository) FilterByUser(ctx context.Context, userID string) ([]entity.Project, error) {
	if m.FilterByUserFunc != nil {
		return m.FilterByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProjectRepository) FilterByName(ctx context.Context, name string) ([]entity.Project, error) {
	if m.FilterByNameFunc != nil {
		return m.FilterByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockProjectRepository) FilterByIsActive(ctx context.Context, isActive bool) ([]entity.Project, error) {
	if m.FilterByIsActiveFunc != nil {
		return m.FilterByIsActiveFunc(ctx, isActive)
	}
	return nil, nil
}

func (m *mockProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, projectID, userID)
	}
	return nil
}

func (m *mockProjectRepository) HasMembers(ctx context.Context, id string) (bool, error) {
	if m.HasMembersFunc != nil {
		return m.HasMembersFunc(ctx, id)
	}
	return false, nil
}

// mockUserFinder serves users from a map.
type mockUserFinder map[string]*userentity.User

func (m mockUserFinder) FindByID(_ context.Context, id string) (*userentity.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, apperr.New(apperr.ErrNotFound, "user not found")
}

func ptr[T any](v T) *T { return &v }

var (
	diretor     = policy.Actor{ID: "dir", Role: userentity.RoleDiretor}
	coordMember = policy.Actor{ID: "coord", Role: userentity.RoleCoordenador}
	coordOther  = policy.Actor{ID: "coord-2", Role: userentity.RoleCoordenador}
	membro      = policy.Actor{ID: "m-1", Role: userentity.RoleMembro}
)

func apollo() *entity.Project {
	return &entity.Project{
		ID:       "p-1",
		Name:     "Apollo",
		SectorID: "eng",
		IsActive: true,
		Members: []userentity.User{
			{ID: "coord", Role: userentity.RoleCoordenador},
			{ID: "dir", Role: userentity.RoleDiretor},
			{ID: "m-1", Role: userentity.RoleMembro},
		},
	}
}

func TestProjectUsecase_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("success: defaults and dedupes members", func(t *testing.T) {
		var saved *entity.Project
		var gotMembers []string
		repo := &mockProjectRepository{
			CreateFunc: func(_ context.Context, p *entity.Project, ids []string) error {
				saved, gotMembers = p, ids
				return nil
			},
		}
		uc := NewProjectUsecase(repo, mockUserFinder{})

		_, err := uc.CreateProject(ctx, CreateInput{Name: " Apollo ", SectorID: "eng", MemberIDs: []string{"u1", "u1", " ", "u2"}})

		require.NoError(t, err)
		assert.Equal(t, "Apollo", saved.Name)
		assert.Equal(t, entity.StatusPlanejamento, saved.Status)
		assert.True(t, saved.IsActive)
		assert.Equal(t, []string{"u1", "u2"}, gotMembers)
	})

	t.Run("failure: active name taken in sector", func(t *testing.T) {
		repo := &mockProjectRepository{
			FindActiveByNameInSectorFunc: func(_ context.Context, name, sectorID string) (*entity.Project, error) {
				assert.Equal(t, "Apollo", name)
				assert.Equal(t, "eng", sectorID)
				return apollo(), nil
			},
		}
		uc := NewProjectUsecase(repo, mockUserFinder{})

		_, err := uc.CreateProject(ctx, CreateInput{Name: "Apollo", SectorID: "eng"})

		assert.ErrorIs(t, err, ErrProjectNameExists)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("failure: dangling reference", func(t *testing.T) {
		repo := &mockProjectRepository{
			CreateFunc: func(context.Context, *entity.Project, []string) error { return ErrSectorOrMemberNotFound },
		}
		uc := NewProjectUsecase(repo, mockUserFinder{})

		_, err := uc.CreateProject(ctx, CreateInput{Name: "Apollo", SectorID: "nope"})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestProjectUsecase_GetAllProjects_Paging(t *testing.T) {
	tests := []struct {
		name               string
		page, pageSize     int
		wantPage, wantSize int
	}{
		{name: "as given", page: 2, pageSize: 20, wantPage: 2, wantSize: 20},
		{name: "negative page", page: -1, pageSize: 5, wantPage: 0, wantSize: 5},
		{name: "zero size uses default", page: 0, pageSize: 0, wantPage: 0, wantSize: DefaultPageSize},
		{name: "size is capped", page: 1, pageSize: 1000, wantPage: 1, wantSize: MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProjectRepository{
				FindAllFunc: func(_ context.Context, page, size int) ([]entity.Project, int64, error) {
					assert.Equal(t, tt.wantPage, page)
					assert.Equal(t, tt.wantSize, size)
					return nil, 0, nil
				},
			}
			uc := NewProjectUsecase(repo, mockUserFinder{})

			got, err := uc.GetAllProjects(context.Background(), tt.page, tt.pageSize)

			require.NoError(t, err)
			assert.NotNil(t, got.Items)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.PageSize)
		})
	}
}

func TestProjectUsecase_UpdateProject(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actor      policy.Actor
		changes    entity.Update
		nameOwner  *entity.Project
		wantErr    error
		wantUpdate bool
	}{
		{name: "diretor may update any project", actor: diretor, changes: entity.Update{Status: ptr(entity.StatusConcluido)}, wantUpdate: true},
		{name: "member coordenador may update", actor: coordMember, changes: entity.Update{Status: ptr(entity.StatusPausado)}, wantUpdate: true},
		{name: "non-member coordenador is forbidden", actor: coordOther, changes: entity.Update{Status: ptr(entity.StatusPausado)}, wantErr: apperr.ErrForbidden},
		{name: "membro is forbidden", actor: membro, changes: entity.Update{Status: ptr(entity.StatusPausado)}, wantErr: apperr.ErrForbidden},
		{name: "status may move backwards", actor: diretor, changes: entity.Update{Status: ptr(entity.StatusPlanejamento)}, wantUpdate: true},
		{
			name:      "rename onto another active project",
			actor:     diretor,
			changes:   entity.Update{Name: ptr("Gemini")},
			nameOwner: &entity.Project{ID: "p-2", Name: "Gemini"},
			wantErr:   ErrProjectNameExists,
		},
		{
			name:       "rename keeping own name",
			actor:      diretor,
			changes:    entity.Update{Name: ptr("APOLLO")},
			nameOwner:  &entity.Project{ID: "p-1", Name: "Apollo"},
			wantUpdate: true,
		},
		{
			name:      "moving sector checks the target sector",
			actor:     diretor,
			changes:   entity.Update{SectorID: ptr("sales")},
			nameOwner: &entity.Project{ID: "p-9", Name: "Apollo", SectorID: "sales"},
			wantErr:   ErrProjectNameExists,
		},
		{
			name:    "coordenador cannot drop diretor through the member set",
			actor:   coordMember,
			changes: entity.Update{MemberIDs: &[]string{"coord", "m-1"}},
			wantErr: policy.ErrCannotRemoveDiretor,
		},
		{
			name:       "coordenador may drop membro through the member set",
			actor:      coordMember,
			changes:    entity.Update{MemberIDs: &[]string{"coord", "dir"}},
			wantUpdate: true,
		},
		{
			name:       "diretor may drop diretor through the member set",
			actor:      diretor,
			changes:    entity.Update{MemberIDs: &[]string{"coord"}},
			wantUpdate: true,
		},
		{
			name:       "deactivating skips the name check",
			actor:      diretor,
			changes:    entity.Update{Name: ptr("Gemini"), IsActive: ptr(false)},
			nameOwner:  &entity.Project{ID: "p-2", Name: "Gemini"},
			wantUpdate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := false
			repo := &mockProjectRepository{
				FindByIDFunc: func(context.Context, string) (*entity.Project, error) { return apollo(), nil },
				FindActiveByNameInSectorFunc: func(context.Context, string, string) (*entity.Project, error) {
					if tt.nameOwner == nil {
						return nil, ErrProjectNotFound
					}
					return tt.nameOwner, nil
				},
				UpdateFunc: func(_ context.Context, id string, _ entity.Update) (*entity.Project, error) {
					updated = true
					return &entity.Project{ID: id}, nil
				},
			}
			uc := NewProjectUsecase(repo, mockUserFinder{})

			_, err := uc.UpdateProject(ctx, "p-1", tt.changes, tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantUpdate, updated)
		})
	}
}

func TestProjectUsecase_UpdateProject_NotFound(t *testing.T) {
	uc := NewProjectUsecase(&mockProjectRepository{}, mockUserFinder{})

	_, err := uc.UpdateProject(context.Background(), "missing", entity.Update{}, diretor)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProjectUsecase_RemoveMember(t *testing.T) {
	users := mockUserFinder{
		"coord":    {ID: "coord", Role: userentity.RoleCoordenador},
		"dir":      {ID: "dir", Role: userentity.RoleDiretor},
		"m-1":      {ID: "m-1", Role: userentity.RoleMembro},
		"outsider": {ID: "outsider", Role: userentity.RoleMembro},
	}

	tests := []struct {
		name    string
		actor   policy.Actor
		target  string
		wantErr error
	}{
		{name: "diretor removes membro", actor: diretor, target: "m-1"},
		{name: "diretor removes diretor", actor: diretor, target: "dir"},
		{name: "member coordenador removes membro", actor: coordMember, target: "m-1"},
		{name: "coordenador cannot remove diretor", actor: coordMember, target: "dir", wantErr: policy.ErrCannotRemoveDiretor},
		{name: "non-member coordenador cannot remove diretor", actor: coordOther, target: "dir", wantErr: apperr.ErrForbidden},
		{name: "non-member coordenador", actor: coordOther, target: "m-1", wantErr: policy.ErrNotProjectMember},
		{name: "membro may not remove", actor: membro, target: "m-1", wantErr: apperr.ErrForbidden},
		{name: "unknown target", actor: diretor, target: "ghost", wantErr: apperr.ErrNotFound},
		{name: "target outside project", actor: diretor, target: "outsider", wantErr: ErrMemberNotInProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			removed := false
			repo := &mockProjectRepository{
				FindByIDFunc: func(context.Context, string) (*entity.Project, error) { return apollo(), nil },
				RemoveMemberFunc: func(_ context.Context, projectID, userID string) error {
					removed = true
					assert.Equal(t, "p-1", projectID)
					assert.Equal(t, tt.target, userID)
					return nil
				},
			}
			uc := NewProjectUsecase(repo, users)

			err := uc.RemoveMember(context.Background(), "p-1", tt.target, tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, removed)
				return
			}
			assert.NoError(t, err)
			assert.True(t, removed)
		})
	}
}

func TestProjectUsecase_RemoveMember_ProjectNotFound(t *testing.T) {
	uc := NewProjectUsecase(&mockProjectRepository{}, mockUserFinder{})

	err := uc.RemoveMember(context.Background(), "missing", "u", diretor)

	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectUsecase_DeleteProject(t *testing.T) {
	tests := []struct {
		name       string
		hasMembers bool
		hasErr     error
		wantErr    error
		wantDelete bool
	}{
		{name: "no members", wantDelete: true},
		{name: "has members", hasMembers: true, wantErr: apperr.ErrInvalidState},
		{name: "missing project", hasErr: ErrProjectNotFound, wantErr: apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			repo := &mockProjectRepository{
				HasMembersFunc: func(context.Context, string) (bool, error) { return tt.hasMembers, tt.hasErr },
				DeleteFunc: func(context.Context, string) error {
					deleted = true
					return nil
				},
			}
			uc := NewProjectUsecase(repo, mockUserFinder{})

			err := uc.DeleteProject(context.Background(), "p-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantDelete, deleted)
		})
	}
}

func TestProjectUsecase_ListMyProjects(t *testing.T) {
	repo := &mockProjectRepository{
		FilterByUserFunc: func(_ context.Context, userID string) ([]entity.Project, error) {
			return []entity.Project{{ID: "p-1"}}, nil
		},
	}
	uc := NewProjectUsecase(repo, mockUserFinder{})

	got, err := uc.ListMyProjects(context.Background(), "m-1", membro)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = uc.ListMyProjects(context.Background(), "someone-else", membro)
	assert.ErrorIs(t, err, policy.ErrNotOwnProjects)
}

func TestProjectUsecase_Filters(t *testing.T) {
	ctx := context.Background()
	var calls []string
	repo := &mockProjectRepository{
		FilterByStatusFunc: func(_ context.Context, s entity.Status) ([]entity.Project, error) {
			calls = append(calls, "status:"+string(s))
			return nil, nil
		},
		FilterBySectorFunc: func(_ context.Context, id string) ([]entity.Project, error) {
			calls = append(calls, "sector:"+id)
			return nil, nil
		},
		FilterByUserFunc: func(_ context.Context, id string) ([]entity.Project, error) {
			calls = append(calls, "user:"+id)
			return nil, nil
		},
		FilterByNameFunc: func(_ context.Context, name string) ([]entity.Project, error) {
			calls = append(calls, "name:"+name)
			return nil, nil
		},
		FilterByIsActiveFunc: func(context.Context, bool) ([]entity.Project, error) {
			return nil, errors.New("db down")
		},
	}
	uc := NewProjectUsecase(repo, mockUserFinder{})

	_, _ = uc.FilterProjectsByStatus(ctx, entity.StatusPausado)
	_, _ = uc.FilterProjectsBySector(ctx, "eng")
	_, _ = uc.FilterProjectsByUser(ctx, "u1")
	_, _ = uc.FilterProjectsByName(ctx, " apo ")
	_, err := uc.FilterProjectsByIsActive(ctx, true)

	assert.Equal(t, []string{"status:PAUSADO", "sector:eng", "user:u1", "name:apo"}, calls)
	assert.EqualError(t, err, "db down")
}

func TestProjectUsecase_DeactivateAndVerify(t *testing.T) {
	repo := &mockProjectRepository{
		DeactivateFunc: func(context.Context, string) error { return ErrProjectNotFound },
		HasMembersFunc: func(context.Context, string) (bool, error) { return true, nil },
	}
	uc := NewProjectUsecase(repo, mockUserFinder{})

	assert.ErrorIs(t, uc.DeactivateProject(context.Background(), "missing"), apperr.ErrNotFound)

	has, err := uc.VerifyIfProjectHasMembers(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, has)
}

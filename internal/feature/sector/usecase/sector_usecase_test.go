package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamflow_backend/internal/feature/sector/domain/entity"
	"teamflow_backend/internal/shared/apperr"
)

// mockSectorRepository is a mock implementation of SectorRepository.
type mockSectorRepository struct {
	CreateFunc       func(ctx context.Context, sector *entity.Sector) error
	UpdateFunc       func(ctx context.Context, id string, changes entity.Update) (*entity.Sector, error)
	DeleteFunc       func(ctx context.Context, id string) error
	FindByIDFunc     func(ctx context.Context, id string) (*entity.Sector, error)
	FindByNameFunc   func(ctx context.Context, name string) (*entity.Sector, error)
	ListOrFilterFunc func(ctx context.Context, filter entity.Filter) ([]entity.Sector, error)
}

func (m *mockSectorRepository) Create(ctx context.Context, sector *entity.Sector) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sector)
	}
	sector.ID = "s-1"
	return nil
}

func (m *mockSectorRepository) Update(ctx context.Context, id string, changes entity.Update) (*entity.Sector, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, changes)
	}
	return &entity.Sector{ID: id}, nil
}

func (m *mockSectorRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockSectorRepository) FindByID(ctx context.Context, id string) (*entity.Sector, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSectorNotFound
}

func (m *mockSectorRepository) FindByName(ctx context.Context, name string) (*entity.Sector, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, ErrSectorNotFound
}

func (m *mockSectorRepository) ListOrFilter(ctx context.Context, filter entity.Filter) ([]entity.Sector, error) {
	if m.ListOrFilterFunc != nil {
		return m.ListOrFilterFunc(ctx, filter)
	}
	return nil, nil
}

func ptr[T any](v T) *T { return &v }

func TestSectorUsecase_CreateSector(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var saved *entity.Sector
		repo := &mockSectorRepository{
			CreateFunc: func(_ context.Context, s *entity.Sector) error {
				saved = s
				s.ID = "s-1"
				return nil
			},
		}
		uc := NewSectorUsecase(repo)

		sector, err := uc.CreateSector(ctx, CreateInput{Name: "  Engineering ", Description: ptr("Builds things")})

		require.NoError(t, err)
		assert.Equal(t, "s-1", sector.ID)
		assert.Equal(t, "Engineering", saved.Name)
		assert.True(t, saved.IsActive)
	})

	t.Run("failure: name taken", func(t *testing.T) {
		repo := &mockSectorRepository{
			FindByNameFunc: func(context.Context, string) (*entity.Sector, error) {
				return &entity.Sector{ID: "other", Name: "engineering"}, nil
			},
		}
		uc := NewSectorUsecase(repo)

		_, err := uc.CreateSector(ctx, CreateInput{Name: "Engineering"})

		assert.ErrorIs(t, err, ErrSectorNameExists)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("failure: lookup error", func(t *testing.T) {
		dbErr := errors.New("db down")
		repo := &mockSectorRepository{
			FindByNameFunc: func(context.Context, string) (*entity.Sector, error) { return nil, dbErr },
		}
		uc := NewSectorUsecase(repo)

		_, err := uc.CreateSector(ctx, CreateInput{Name: "Engineering"})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestSectorUsecase_UpdateSector(t *testing.T) {
	ctx := context.Background()
	found := func(_ context.Context, id string) (*entity.Sector, error) {
		return &entity.Sector{ID: id, Name: "Engineering"}, nil
	}

	tests := []struct {
		name       string
		findByID   func(ctx context.Context, id string) (*entity.Sector, error)
		findByName func(ctx context.Context, name string) (*entity.Sector, error)
		changes    entity.Update
		wantErr    error
	}{
		{
			name:     "success: rename to free name",
			findByID: found,
			changes:  entity.Update{Name: ptr("Platform")},
		},
		{
			name:     "success: keep own name with different case",
			findByID: found,
			findByName: func(context.Context, string) (*entity.Sector, error) {
				return &entity.Sector{ID: "s-1", Name: "Engineering"}, nil
			},
			changes: entity.Update{Name: ptr("ENGINEERING")},
		},
		{
			name:     "failure: rename onto another sector",
			findByID: found,
			findByName: func(context.Context, string) (*entity.Sector, error) {
				return &entity.Sector{ID: "s-2", Name: "Sales"}, nil
			},
			changes: entity.Update{Name: ptr("Sales")},
			wantErr: ErrSectorNameExists,
		},
		{
			name:    "failure: not found",
			changes: entity.Update{IsActive: ptr(false)},
			wantErr: ErrSectorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSectorRepository{FindByIDFunc: tt.findByID, FindByNameFunc: tt.findByName}
			uc := NewSectorUsecase(repo)

			_, err := uc.UpdateSector(ctx, "s-1", tt.changes)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSectorUsecase_DeleteSector(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		kind    error
	}{
		{name: "success"},
		{name: "not found", repoErr: ErrSectorNotFound, kind: apperr.ErrNotFound},
		{name: "referenced by projects", repoErr: ErrSectorInUse, kind: apperr.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSectorRepository{
				DeleteFunc: func(context.Context, string) error { return tt.repoErr },
			}
			uc := NewSectorUsecase(repo)

			err := uc.DeleteSector(context.Background(), "s-1")

			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestSectorUsecase_ListOrFilter(t *testing.T) {
	var got entity.Filter
	repo := &mockSectorRepository{
		ListOrFilterFunc: func(_ context.Context, f entity.Filter) ([]entity.Sector, error) {
			got = f
			return []entity.Sector{{ID: "s-1"}}, nil
		},
	}
	uc := NewSectorUsecase(repo)

	sectors, err := uc.ListOrFilter(context.Background(), entity.Filter{
		Name:        ptr(" eng "),
		Description: ptr("   "),
		IsActive:    ptr(true),
	})

	require.NoError(t, err)
	assert.Len(t, sectors, 1)
	require.NotNil(t, got.Name)
	assert.Equal(t, "eng", *got.Name)
	assert.Nil(t, got.Description, "blank predicates are dropped")
	assert.True(t, *got.IsActive)
}

func TestSectorUsecase_GetSectorByID(t *testing.T) {
	uc := NewSectorUsecase(&mockSectorRepository{})

	_, err := uc.GetSectorByID(context.Background(), "missing")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

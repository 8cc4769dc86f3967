package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase"
)

func TestVersionUseCase_Record(t *testing.T) {
	ctx := context.Background()

	event := func(typ string) *domain.ResourceSavedEvent {
		return &domain.ResourceSavedEvent{
			EventID:      uuid.New(),
			ResourceID:   3,
			ResourceType: typ,
			Snapshot:     domain.ResourceSnapshot{Name: "Jardinage", Slug: "jardinage", Languages: []string{"fr"}},
			Author:       "alice",
		}
	}

	t.Run("versioned kind", func(t *testing.T) {
		versions := &MockVersionRepository{}
		uc := usecase.NewVersionUseCase(versions, &MockResourceRepository{}, zap.NewNop())
		versions.On("Create", ctx, mock.MatchedBy(func(v *domain.ResourceVersion) bool {
			s, err := v.DecodeSnapshot()
			return err == nil && v.ResourceID == 3 && v.Author == "alice" && s.Name == "Jardinage"
		})).Return(nil)

		recorded, err := uc.Record(ctx, event("way"))

		require.NoError(t, err)
		assert.True(t, recorded)
		versions.AssertExpectations(t)
	})

	t.Run("session ways have no history", func(t *testing.T) {
		versions := &MockVersionRepository{}
		uc := usecase.NewVersionUseCase(versions, &MockResourceRepository{}, zap.NewNop())

		recorded, err := uc.Record(ctx, event("sessionway"))

		require.NoError(t, err)
		assert.False(t, recorded)
		versions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown kind is skipped", func(t *testing.T) {
		versions := &MockVersionRepository{}
		uc := usecase.NewVersionUseCase(versions, &MockResourceRepository{}, zap.NewNop())

		recorded, err := uc.Record(ctx, event("podcast"))

		require.NoError(t, err)
		assert.False(t, recorded)
	})
}

func TestVersionUseCase_Get(t *testing.T) {
	ctx := context.Background()
	versions := &MockVersionRepository{}
	uc := usecase.NewVersionUseCase(versions, &MockResourceRepository{}, zap.NewNop())
	versions.On("GetByID", ctx, int64(5)).Return(&domain.ResourceVersion{ID: 5, ResourceID: 3}, nil)

	v, err := uc.Get(ctx, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.ID)

	_, err = uc.Get(ctx, 4, 5)
	assert.ErrorIs(t, err, errors.ErrVersionNotFound)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase"
)

func TestProfileUseCase_Get(t *testing.T) {
	ctx := context.Background()
	comments := &MockCommentRepository{}
	annotations := &MockAnnotationRepository{}
	resources := &MockResourceRepository{}
	logger := zap.NewNop()
	uc := usecase.NewProfileUseCase(
		usecase.NewCommentUseCase(comments, resources, logger),
		usecase.NewAnnotationUseCase(annotations, resources, logger),
	)

	t.Run("collects comments and annotations", func(t *testing.T) {
		comments.On("ListByAuthor", ctx, "alice").Return([]*domain.Comment{
			{ID: 1, ResourceID: 2, Text: "Great", Colour: domain.ColourGreen, Author: "alice"},
		}, nil)
		annotations.On("ListByAuthor", ctx, "alice").Return([]*domain.Annotation{
			{ID: 3, ResourceID: 2, ContentType: "note", RangeType: "whole", Author: "alice"},
		}, nil)

		profile, err := uc.Get(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		require.Len(t, profile.Comments, 1)
		assert.Equal(t, "#AAFFAA", profile.Comments[0].ColourRGB)
		assert.Len(t, profile.Annotations, 1)
	})

	t.Run("empty username", func(t *testing.T) {
		_, err := uc.Get(ctx, " ")

		requireField(t, err, errors.ErrInvalidRequest, "username")
	})
}

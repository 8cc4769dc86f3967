package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
)

func TestCommentUseCase_Add(t *testing.T) {
	ctx := context.Background()

	newUC := func() (*usecase.CommentUseCase, *MockCommentRepository, *MockResourceRepository) {
		comments := &MockCommentRepository{}
		resources := &MockResourceRepository{}
		return usecase.NewCommentUseCase(comments, resources, zap.NewNop()), comments, resources
	}

	t.Run("success", func(t *testing.T) {
		uc, comments, resources := newUC()
		resources.On("GetByID", ctx, int64(1)).Return(&domain.Resource{ID: 1, Type: "wiki"}, nil)
		comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.ResourceID == 1 && c.Colour == domain.ColourRed && c.Category == domain.CategoryPrivacy
		})).Return(nil)

		resp, err := uc.Add(ctx, 1, dto.AddCommentRequest{
			Text:     "Tracks its visitors",
			Colour:   int(domain.ColourRed),
			Category: int(domain.CategoryPrivacy),
			Author:   "bob",
		})

		require.NoError(t, err)
		assert.Equal(t, "#FFAAAA", resp.ColourRGB)
		assert.Equal(t, "respect of privacy", resp.CategoryLabel)
		comments.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		req   dto.AddCommentRequest
		field string
	}{
		{"empty text", dto.AddCommentRequest{Text: " ", Author: "bob"}, "text"},
		{"no author", dto.AddCommentRequest{Text: "ok"}, "author"},
		{"colour out of range", dto.AddCommentRequest{Text: "ok", Author: "bob", Colour: 3}, "colour"},
		{"category out of range", dto.AddCommentRequest{Text: "ok", Author: "bob", Category: -1}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, comments, _ := newUC()

			_, err := uc.Add(ctx, 1, tt.req)

			requireField(t, err, errors.ErrCommentInvalid, tt.field)
			comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown resource", func(t *testing.T) {
		uc, _, resources := newUC()
		resources.On("GetByID", ctx, int64(9)).Return(nil, errors.ErrResourceNotFound)

		_, err := uc.Add(ctx, 9, dto.AddCommentRequest{Text: "ok", Author: "bob"})

		assert.ErrorIs(t, err, errors.ErrResourceNotFound)
	})
}

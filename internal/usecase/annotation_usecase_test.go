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

func TestAnnotationUseCase_Add(t *testing.T) {
	ctx := context.Background()

	newUC := func() (*usecase.AnnotationUseCase, *MockAnnotationRepository, *MockResourceRepository) {
		annotations := &MockAnnotationRepository{}
		resources := &MockResourceRepository{}
		return usecase.NewAnnotationUseCase(annotations, resources, zap.NewNop()), annotations, resources
	}

	t.Run("note on a text span", func(t *testing.T) {
		uc, annotations, resources := newUC()
		resources.On("GetByID", ctx, int64(1)).Return(&domain.Resource{ID: 1, Type: "etherpad"}, nil)
		annotations.On("Create", ctx, mock.AnythingOfType("*domain.Annotation")).Return(nil)

		a, err := uc.Add(ctx, 1, dto.AddAnnotationRequest{
			ContentType: "Note",
			Content:     map[string]any{"text": "See chapter 2"},
			RangeType:   "textspan",
			Range:       map[string]any{"start": 10, "end": 42},
			Author:      "carol",
		})

		require.NoError(t, err)
		assert.Equal(t, "note", a.ContentType)
		assert.Equal(t, "textspan", a.RangeType)
		assert.JSONEq(t, `{"text":"See chapter 2"}`, string(a.Content))
		assert.JSONEq(t, `{"start":10,"end":42}`, string(a.Range))
	})

	t.Run("unknown content type", func(t *testing.T) {
		uc, _, resources := newUC()

		_, err := uc.Add(ctx, 1, dto.AddAnnotationRequest{ContentType: "video", RangeType: "whole"})

		requireField(t, err, errors.ErrInvalidForm, "content_type")
		resources.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown range type", func(t *testing.T) {
		uc, _, _ := newUC()

		_, err := uc.Add(ctx, 1, dto.AddAnnotationRequest{ContentType: "note", RangeType: "page"})

		requireField(t, err, errors.ErrInvalidForm, "range_type")
	})

	t.Run("invalid span", func(t *testing.T) {
		uc, annotations, resources := newUC()
		resources.On("GetByID", ctx, int64(1)).Return(&domain.Resource{ID: 1, Type: "etherpad"}, nil)

		_, err := uc.Add(ctx, 1, dto.AddAnnotationRequest{
			ContentType: "note",
			Content:     map[string]any{"text": "x"},
			RangeType:   "textspan",
			Range:       map[string]any{"start": 10, "end": 2},
		})

		requireField(t, err, errors.ErrInvalidForm, "range")
		annotations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

package usecase

import (
	"context"
	stderrors "errors"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/pkg/formfield"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AnnotationUseCase attaches notes and links to parts of resources
type AnnotationUseCase struct {
	annotations repository.AnnotationRepository
	resources   repository.ResourceRepository
	logger      *zap.Logger
}

func NewAnnotationUseCase(
	annotations repository.AnnotationRepository,
	resources repository.ResourceRepository,
	logger *zap.Logger,
) *AnnotationUseCase {
	return &AnnotationUseCase{
		annotations: annotations,
		resources:   resources,
		logger:      logger,
	}
}

// Add validates the content and range through their registered forms and
// stores the annotation
func (uc *AnnotationUseCase) Add(ctx context.Context, resourceID int64, req dto.AddAnnotationRequest) (*domain.Annotation, error) {
	content, ok := domain.AnnotationContents.Lookup(req.ContentType)
	if !ok {
		return nil, errors.FieldError(errors.ErrInvalidForm, "content_type", "Unknown annotation content type")
	}
	rng, ok := domain.AnnotationRanges.Lookup(req.RangeType)
	if !ok {
		return nil, errors.FieldError(errors.ErrInvalidForm, "range_type", "Unknown annotation range type")
	}

	if _, err := uc.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	a := &domain.Annotation{
		ResourceID:  resourceID,
		ContentType: content.Type,
		RangeType:   rng.Type,
		Author:      req.Author,
	}

	var err error
	if a.Content, err = cleanForm(ctx, content.Kind.Form(), "content", req.Content); err != nil {
		return nil, err
	}
	if a.Range, err = cleanForm(ctx, rng.Kind.Form(), "range", req.Range); err != nil {
		return nil, err
	}

	if err := uc.annotations.Create(ctx, a); err != nil {
		return nil, err
	}

	uc.logger.Info("Annotation added",
		zap.Int64("resource_id", resourceID),
		zap.String("content_type", a.ContentType),
		zap.String("range_type", a.RangeType))
	return a, nil
}

func (uc *AnnotationUseCase) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Annotation, error) {
	if _, err := uc.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}
	return uc.annotations.ListByResource(ctx, resourceID)
}

func (uc *AnnotationUseCase) ListByAuthor(ctx context.Context, author string) ([]*domain.Annotation, error) {
	return uc.annotations.ListByAuthor(ctx, author)
}

func (uc *AnnotationUseCase) Delete(ctx context.Context, id int64) error {
	return uc.annotations.Delete(ctx, id)
}

// cleanForm runs value through form and encodes the cleaned data
func cleanForm(ctx context.Context, form domain.DetailsForm, field string, value any) (datatypes.JSON, error) {
	cleaned, err := form.Clean(ctx, value)
	if err != nil {
		var formErr *formfield.Error
		if stderrors.As(err, &formErr) || stderrors.Is(err, formfield.ErrNothingToValidate) {
			return nil, errors.FieldError(errors.ErrInvalidForm, field, err.Error())
		}
		return nil, err
	}
	return form.Encode(cleaned)
}

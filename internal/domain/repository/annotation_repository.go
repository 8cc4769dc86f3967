package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// AnnotationRepository stores annotations on resources.
type AnnotationRepository interface {
	Create(ctx context.Context, a *domain.Annotation) error
	GetByID(ctx context.Context, id int64) (*domain.Annotation, error)
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.Annotation, error)
	ListByAuthor(ctx context.Context, author string) ([]*domain.Annotation, error)
	Delete(ctx context.Context, id int64) error
}

package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// VersionRepository stores resource history.
type VersionRepository interface {
	Create(ctx context.Context, v *domain.ResourceVersion) error
	GetByID(ctx context.Context, id int64) (*domain.ResourceVersion, error)

	// ListByResource returns the versions of a resource, newest first
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceVersion, error)
}

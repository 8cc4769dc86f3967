package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// ImageRepository stores avatar images.
type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) error
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

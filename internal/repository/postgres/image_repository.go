package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"go.uber.org/zap"
)

type imageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewImageRepository(db *DB) repository.ImageRepository {
	return &imageRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *imageRepository) Create(ctx context.Context, img *domain.Image) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO images (url, title) VALUES ($1, $2) RETURNING id, created`,
		img.URL, img.Title,
	).Scan(&img.ID, &img.Created)
	if err != nil {
		r.logger.Error("Failed to create image", zap.String("url", img.URL), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	var img domain.Image
	err := r.db.GetContext(ctx, &img, `SELECT id, url, title, created FROM images WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrImageNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get image", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &img, nil
}

func (r *imageRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM images WHERE id = $1)`, id); err != nil {
		r.logger.Error("Failed to check image", zap.Int64("id", id), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}

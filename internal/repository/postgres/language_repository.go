package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"go.uber.org/zap"
)

type languageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLanguageRepository(db *DB) repository.LanguageRepository {
	return &languageRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *languageRepository) GetOrCreate(ctx context.Context, code string) (*domain.ResourceLanguage, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO resource_languages (code)
		VALUES ($1)
		ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		RETURNING id, code
	`

	var lang domain.ResourceLanguage
	if err := r.db.GetContext(ctx, &lang, query, code); err != nil {
		r.logger.Error("Failed to get or create language", zap.String("code", code), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &lang, nil
}

func (r *languageRepository) List(ctx context.Context) ([]*domain.ResourceLanguage, error) {
	var langs []*domain.ResourceLanguage
	if err := r.db.SelectContext(ctx, &langs, `SELECT id, code FROM resource_languages ORDER BY code`); err != nil {
		r.logger.Error("Failed to list languages", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return langs, nil
}

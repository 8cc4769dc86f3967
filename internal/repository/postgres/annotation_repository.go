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

const annotationColumns = `id, resource_id, content_type, content, range_type, range_data, author, created`

type annotationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAnnotationRepository(db *DB) repository.AnnotationRepository {
	return &annotationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *annotationRepository) Create(ctx context.Context, a *domain.Annotation) error {
	query := `
		INSERT INTO annotations (resource_id, content_type, content, range_type, range_data, author)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created
	`

	err := r.db.QueryRowContext(ctx, query,
		a.ResourceID, a.ContentType, jsonValue(a.Content), a.RangeType, jsonValue(a.Range), a.Author,
	).Scan(&a.ID, &a.Created)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errors.ErrResourceNotFound
		}
		r.logger.Error("Failed to create annotation", zap.Int64("resource_id", a.ResourceID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *annotationRepository) GetByID(ctx context.Context, id int64) (*domain.Annotation, error) {
	var a domain.Annotation
	err := r.db.GetContext(ctx, &a, `SELECT `+annotationColumns+` FROM annotations WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrAnnotationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get annotation", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &a, nil
}

func (r *annotationRepository) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Annotation, error) {
	query := `SELECT ` + annotationColumns + ` FROM annotations WHERE resource_id = $1 ORDER BY created, id`

	var annotations []*domain.Annotation
	if err := r.db.SelectContext(ctx, &annotations, query, resourceID); err != nil {
		r.logger.Error("Failed to list annotations", zap.Int64("resource_id", resourceID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return annotations, nil
}

func (r *annotationRepository) ListByAuthor(ctx context.Context, author string) ([]*domain.Annotation, error) {
	query := `SELECT ` + annotationColumns + ` FROM annotations WHERE author = $1 ORDER BY created DESC, id DESC`

	var annotations []*domain.Annotation
	if err := r.db.SelectContext(ctx, &annotations, query, author); err != nil {
		r.logger.Error("Failed to list annotations by author", zap.String("author", author), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return annotations, nil
}

func (r *annotationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM annotations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete annotation", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrAnnotationNotFound
	}
	return nil
}

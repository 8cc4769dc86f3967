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

const versionColumns = `id, resource_id, resource_type, snapshot, author, created`

type versionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVersionRepository(db *DB) repository.VersionRepository {
	return &versionRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *versionRepository) Create(ctx context.Context, v *domain.ResourceVersion) error {
	query := `
		INSERT INTO resource_versions (resource_id, resource_type, snapshot, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created
	`

	err := r.db.QueryRowContext(ctx, query,
		v.ResourceID, v.ResourceType, jsonValue(v.Snapshot), v.Author,
	).Scan(&v.ID, &v.Created)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errors.ErrResourceNotFound
		}
		r.logger.Error("Failed to create version", zap.Int64("resource_id", v.ResourceID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *versionRepository) GetByID(ctx context.Context, id int64) (*domain.ResourceVersion, error) {
	var v domain.ResourceVersion
	err := r.db.GetContext(ctx, &v, `SELECT `+versionColumns+` FROM resource_versions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrVersionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get version", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &v, nil
}

func (r *versionRepository) ListByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM resource_versions WHERE resource_id = $1 ORDER BY created DESC, id DESC`

	var versions []*domain.ResourceVersion
	if err := r.db.SelectContext(ctx, &versions, query, resourceID); err != nil {
		r.logger.Error("Failed to list versions", zap.Int64("resource_id", resourceID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return versions, nil
}

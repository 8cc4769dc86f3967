package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"go.uber.org/zap"
)

const commentColumns = `id, resource_id, text, colour, category, author, created, modified`

type commentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (resource_id, text, colour, category, author)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created, modified
	`

	err := r.db.QueryRowContext(ctx, query,
		c.ResourceID, c.Text, int(c.Colour), int(c.Category), c.Author,
	).Scan(&c.ID, &c.Created, &c.Modified)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errors.ErrResourceNotFound
		}
		r.logger.Error("Failed to create comment", zap.Int64("resource_id", c.ResourceID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *commentRepository) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE resource_id = $1 ORDER BY created, id`

	var comments []*domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, resourceID); err != nil {
		r.logger.Error("Failed to list comments", zap.Int64("resource_id", resourceID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return comments, nil
}

func (r *commentRepository) ListByAuthor(ctx context.Context, author string) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE author = $1 ORDER BY created DESC, id DESC`

	var comments []*domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, author); err != nil {
		r.logger.Error("Failed to list comments by author", zap.String("author", author), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return comments, nil
}

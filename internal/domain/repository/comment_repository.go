package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// CommentRepository stores comments left on resources.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error

	// ListByResource returns the comments of a resource, oldest first
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.Comment, error)

	// ListByAuthor returns the comments written by author, newest first
	ListByAuthor(ctx context.Context, author string) ([]*domain.Comment, error)
}

package usecase

import (
	"context"
	"strings"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

// CommentUseCase manages the feedback left on resources
type CommentUseCase struct {
	comments  repository.CommentRepository
	resources repository.ResourceRepository
	logger    *zap.Logger
}

func NewCommentUseCase(
	comments repository.CommentRepository,
	resources repository.ResourceRepository,
	logger *zap.Logger,
) *CommentUseCase {
	return &CommentUseCase{
		comments:  comments,
		resources: resources,
		logger:    logger,
	}
}

// Add leaves a comment on a resource
func (uc *CommentUseCase) Add(ctx context.Context, resourceID int64, req dto.AddCommentRequest) (*dto.CommentResponse, error) {
	c := &domain.Comment{
		ResourceID: resourceID,
		Text:       strings.TrimSpace(req.Text),
		Colour:     domain.Colour(req.Colour),
		Category:   domain.Category(req.Category),
		Author:     strings.TrimSpace(req.Author),
	}

	switch {
	case c.Text == "":
		return nil, errors.FieldError(errors.ErrCommentInvalid, "text", "This field is required")
	case c.Author == "":
		return nil, errors.FieldError(errors.ErrCommentInvalid, "author", "This field is required")
	case !c.Colour.Valid():
		return nil, errors.FieldError(errors.ErrCommentInvalid, "colour", "Select a valid choice")
	case !c.Category.Valid():
		return nil, errors.FieldError(errors.ErrCommentInvalid, "category", "Select a valid choice")
	}

	if _, err := uc.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.logger.Info("Comment added",
		zap.Int64("resource_id", resourceID),
		zap.String("author", c.Author),
		zap.Stringer("colour", c.Colour))

	resp := dto.NewCommentResponse(c)
	return &resp, nil
}

// ListByResource returns the comments of a resource, oldest first
func (uc *CommentUseCase) ListByResource(ctx context.Context, resourceID int64) ([]dto.CommentResponse, error) {
	if _, err := uc.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}
	comments, err := uc.comments.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return commentResponses(comments), nil
}

// ListByAuthor returns what a user commented, newest first
func (uc *CommentUseCase) ListByAuthor(ctx context.Context, author string) ([]dto.CommentResponse, error) {
	comments, err := uc.comments.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return commentResponses(comments), nil
}

func commentResponses(comments []*domain.Comment) []dto.CommentResponse {
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.NewCommentResponse(c))
	}
	return out
}

package usecase

import (
	"context"
	"strings"

	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase/dto"
)

// ProfileUseCase gathers the contributions of a user
type ProfileUseCase struct {
	comments    *CommentUseCase
	annotations *AnnotationUseCase
}

func NewProfileUseCase(comments *CommentUseCase, annotations *AnnotationUseCase) *ProfileUseCase {
	return &ProfileUseCase{comments: comments, annotations: annotations}
}

func (uc *ProfileUseCase) Get(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.FieldError(errors.ErrInvalidRequest, "username", "This field is required")
	}

	comments, err := uc.comments.ListByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	annotations, err := uc.annotations.ListByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		Username:    username,
		Comments:    comments,
		Annotations: annotations,
	}, nil
}

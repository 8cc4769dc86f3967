package usecase

import (
	"context"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

// ImageUseCase registers avatar images
type ImageUseCase struct {
	images repository.ImageRepository
	logger *zap.Logger
}

func NewImageUseCase(images repository.ImageRepository, logger *zap.Logger) *ImageUseCase {
	return &ImageUseCase{images: images, logger: logger}
}

func (uc *ImageUseCase) Register(ctx context.Context, req dto.RegisterImageRequest) (*domain.Image, error) {
	img := &domain.Image{URL: req.URL, Title: req.Title}
	if err := uc.images.Create(ctx, img); err != nil {
		return nil, err
	}
	uc.logger.Info("Image registered", zap.Int64("id", img.ID), zap.String("url", img.URL))
	return img, nil
}

func (uc *ImageUseCase) Get(ctx context.Context, id int64) (*domain.Image, error) {
	return uc.images.GetByID(ctx, id)
}

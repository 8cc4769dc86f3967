package usecase

import (
	"context"
	"encoding/json"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// VersionUseCase keeps the history of resources
type VersionUseCase struct {
	versions  repository.VersionRepository
	resources repository.ResourceRepository
	logger    *zap.Logger
}

func NewVersionUseCase(
	versions repository.VersionRepository,
	resources repository.ResourceRepository,
	logger *zap.Logger,
) *VersionUseCase {
	return &VersionUseCase{
		versions:  versions,
		resources: resources,
		logger:    logger,
	}
}

// Record stores the snapshot carried by a saved event. Kinds without
// history and unknown kinds are skipped; the returned flag tells whether a
// version was written.
func (uc *VersionUseCase) Record(ctx context.Context, event *domain.ResourceSavedEvent) (bool, error) {
	entry, ok := domain.Resources.Lookup(event.ResourceType)
	if !ok {
		uc.logger.Warn("Skipping version of unknown kind",
			zap.Int64("resource_id", event.ResourceID),
			zap.String("type", event.ResourceType))
		return false, nil
	}
	if !domain.IsVersioned(entry.Kind) {
		return false, nil
	}

	snapshot, err := json.Marshal(event.Snapshot)
	if err != nil {
		return false, err
	}

	v := &domain.ResourceVersion{
		ResourceID:   event.ResourceID,
		ResourceType: entry.Type,
		Snapshot:     datatypes.JSON(snapshot),
		Author:       event.Author,
	}
	if err := uc.versions.Create(ctx, v); err != nil {
		return false, err
	}

	metrics.RecordVersion()
	uc.logger.Debug("Version recorded",
		zap.Int64("resource_id", v.ResourceID),
		zap.Int64("version_id", v.ID))
	return true, nil
}

// List returns the history of a resource, newest first
func (uc *VersionUseCase) List(ctx context.Context, resourceID int64) ([]*domain.ResourceVersion, error) {
	if _, err := uc.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}
	return uc.versions.ListByResource(ctx, resourceID)
}

// Get returns one version of a resource
func (uc *VersionUseCase) Get(ctx context.Context, resourceID, versionID int64) (*domain.ResourceVersion, error) {
	v, err := uc.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if v.ResourceID != resourceID {
		return nil, errors.ErrVersionNotFound
	}
	return v, nil
}

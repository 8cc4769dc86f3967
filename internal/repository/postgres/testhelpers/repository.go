package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewResourceRepositoryForTest creates a resource repository on the test database
func NewResourceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ResourceRepository {
	return postgres.NewResourceRepository(NewDBForTest(db, logger))
}

// NewLanguageRepositoryForTest creates a language repository on the test database
func NewLanguageRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.LanguageRepository {
	return postgres.NewLanguageRepository(NewDBForTest(db, logger))
}

// NewGeoLocationRepositoryForTest creates a geolocation repository on the test database
func NewGeoLocationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.GeoLocationRepository {
	return postgres.NewGeoLocationRepository(NewDBForTest(db, logger))
}

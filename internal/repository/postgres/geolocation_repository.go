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

type geoLocationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewGeoLocationRepository(db *DB) repository.GeoLocationRepository {
	return &geoLocationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *geoLocationRepository) GetByID(ctx context.Context, id int64) (*domain.GeoLocation, error) {
	query := `
		SELECT id, address, ST_Y(location) AS lat, ST_X(location) AS lon
		FROM geolocations
		WHERE id = $1
	`

	var g domain.GeoLocation
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Address, &g.Location.Lat, &g.Location.Lon)
	if err == sql.ErrNoRows {
		return nil, errors.ErrLocationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get geolocation by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &g, nil
}

func (r *geoLocationRepository) Save(ctx context.Context, g *domain.GeoLocation) error {
	if g.ID == 0 {
		query := `
			INSERT INTO geolocations (address, location)
			VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326))
			RETURNING id
		`
		err := r.db.QueryRowContext(ctx, query, g.Address, g.Location.Lon, g.Location.Lat).Scan(&g.ID)
		if err != nil {
			r.logger.Error("Failed to create geolocation", zap.String("address", g.Address), zap.Error(err))
			return errors.ErrDatabaseError
		}
		return nil
	}

	query := `
		UPDATE geolocations
		SET address = $1, location = ST_SetSRID(ST_MakePoint($2, $3), 4326)
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, g.Address, g.Location.Lon, g.Location.Lat, g.ID)
	if err != nil {
		r.logger.Error("Failed to update geolocation", zap.Int64("id", g.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrLocationNotFound
	}
	return nil
}

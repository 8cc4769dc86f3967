package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// GeoLocationRepository stores geocoded addresses.
type GeoLocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.GeoLocation, error)

	// Save inserts g when its ID is zero and updates it otherwise
	Save(ctx context.Context, g *domain.GeoLocation) error
}

// Geocoder resolves addresses to coordinates and back.
type Geocoder interface {
	// Geocode returns the best match for address
	Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error)

	// Reverse returns the address found at p
	Reverse(ctx context.Context, p domain.Point) (*domain.GeocodeResult, error)
}

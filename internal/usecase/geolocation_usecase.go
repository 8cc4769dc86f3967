package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/pkg/formfield"
	"github.com/learning-catalog/internal/pkg/utils"
	"go.uber.org/zap"
)

// MaxAddressLength is the width of geolocations.address
const MaxAddressLength = 200

// GeoLocationUseCase geocodes and stores addresses
type GeoLocationUseCase struct {
	repo     repository.GeoLocationRepository
	geocoder repository.Geocoder
	logger   *zap.Logger
}

func NewGeoLocationUseCase(
	repo repository.GeoLocationRepository,
	geocoder repository.Geocoder,
	logger *zap.Logger,
) *GeoLocationUseCase {
	return &GeoLocationUseCase{
		repo:     repo,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Save geocodes g.Address and stores g. On success the address is replaced
// by the provider's canonical form. On any geocoding failure the location
// is set to (0,0), the address is kept and a warning is logged; the save
// itself still goes through.
func (uc *GeoLocationUseCase) Save(ctx context.Context, g *domain.GeoLocation) error {
	res, err := uc.geocoder.Geocode(ctx, g.Address)
	if err != nil {
		uc.logger.Warn("Geocoding failed, storing location at origin",
			zap.String("address", g.Address),
			zap.Error(err))
		g.Location = domain.Origin
	} else {
		g.Address = truncate(res.Address, MaxAddressLength)
		g.Location = res.Location
	}

	return uc.repo.Save(ctx, g)
}

// Create geocodes and stores a new address
func (uc *GeoLocationUseCase) Create(ctx context.Context, address string) (*domain.GeoLocation, error) {
	g := &domain.GeoLocation{Address: address}
	if err := uc.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (uc *GeoLocationUseCase) Get(ctx context.Context, id int64) (*domain.GeoLocation, error) {
	return uc.repo.GetByID(ctx, id)
}

// FromSlug builds an unsaved location from a "lat,lon" slug, looking up
// its address. When the lookup fails the slug itself is the address.
func (uc *GeoLocationUseCase) FromSlug(ctx context.Context, slug string) (*domain.GeoLocation, error) {
	lat, lon, err := utils.ParseLatLon(slug)
	if err != nil {
		return nil, errors.FieldError(errors.ErrInvalidCoordinates, "slug", "")
	}

	g := &domain.GeoLocation{
		Address:  slug,
		Location: domain.Point{Lat: lat, Lon: lon},
	}

	res, err := uc.geocoder.Reverse(ctx, g.Location)
	if err != nil {
		uc.logger.Warn("Reverse geocoding failed, using slug as address",
			zap.String("slug", slug),
			zap.Error(err))
		return g, nil
	}

	g.Address = truncate(res.Address, MaxAddressLength)
	return g, nil
}

// Related exposes the use case as the persistence of place details.
func (uc *GeoLocationUseCase) Related() formfield.Related {
	return placeDetails{uc: uc}
}

// placeDetails stores the details of a place as a GeoLocation row.
type placeDetails struct {
	uc *GeoLocationUseCase
}

func (p placeDetails) Load(ctx context.Context, id int64) (map[string]any, error) {
	g, err := p.uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Values(), nil
}

func (p placeDetails) Save(ctx context.Context, id int64, cleaned map[string]any) (map[string]any, error) {
	address, _ := cleaned["address"].(string)
	g := &domain.GeoLocation{ID: id, Address: address}
	if err := p.uc.Save(ctx, g); err != nil {
		return nil, err
	}
	return g.Values(), nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

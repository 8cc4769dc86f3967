package usecase_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase"
)

func newObservedGeoUseCase() (*usecase.GeoLocationUseCase, *MockGeoLocationRepository, *MockGeocoder, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &MockGeoLocationRepository{}
	geocoder := &MockGeocoder{}
	return usecase.NewGeoLocationUseCase(repo, geocoder, zap.New(core)), repo, geocoder, logs
}

func TestGeoLocationUseCase_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("stores canonical address and point", func(t *testing.T) {
		uc, repo, geocoder, logs := newObservedGeoUseCase()
		geocoder.On("Geocode", ctx, "tour eiffel").Return(&domain.GeocodeResult{
			Address:  "Tour Eiffel, Paris, France",
			Location: domain.Point{Lat: 48.8584, Lon: 2.2945},
		}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*domain.GeoLocation")).Return(nil)

		g, err := uc.Create(ctx, "tour eiffel")

		require.NoError(t, err)
		assert.Equal(t, "Tour Eiffel, Paris, France", g.Address)
		assert.Equal(t, domain.Point{Lat: 48.8584, Lon: 2.2945}, g.Location)
		assert.Equal(t, "48.8584,2.2945", g.Slug())
		assert.Zero(t, logs.Len())
	})

	t.Run("long provider address is truncated", func(t *testing.T) {
		uc, repo, geocoder, _ := newObservedGeoUseCase()
		geocoder.On("Geocode", ctx, "long").Return(&domain.GeocodeResult{
			Address:  strings.Repeat("é", 250),
			Location: domain.Point{Lat: 1, Lon: 2},
		}, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		g, err := uc.Create(ctx, "long")

		require.NoError(t, err)
		assert.Equal(t, usecase.MaxAddressLength, len([]rune(g.Address)))
	})

	t.Run("geocoding failure stores origin and warns", func(t *testing.T) {
		uc, repo, geocoder, logs := newObservedGeoUseCase()
		geocoder.On("Geocode", ctx, "Nowhere").Return(nil, stderrors.New("no result"))
		repo.On("Save", ctx, mock.MatchedBy(func(g *domain.GeoLocation) bool {
			return g.Address == "Nowhere" && g.Location.IsOrigin()
		})).Return(nil)

		g, err := uc.Create(ctx, "Nowhere")

		require.NoError(t, err)
		assert.Equal(t, "Nowhere", g.Address)
		assert.True(t, g.Location.IsOrigin())

		warnings := logs.FilterMessage("Geocoding failed, storing location at origin").All()
		require.Len(t, warnings, 1)
		assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
		assert.Equal(t, "Nowhere", warnings[0].ContextMap()["address"])
		repo.AssertExpectations(t)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		uc, repo, geocoder, _ := newObservedGeoUseCase()
		geocoder.On("Geocode", ctx, "Lyon").Return(&domain.GeocodeResult{Address: "Lyon"}, nil)
		repo.On("Save", ctx, mock.Anything).Return(errors.ErrDatabaseError)

		_, err := uc.Create(ctx, "Lyon")

		assert.ErrorIs(t, err, errors.ErrDatabaseError)
	})
}

func TestGeoLocationUseCase_FromSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("reverse geocodes the address", func(t *testing.T) {
		uc, _, geocoder, _ := newObservedGeoUseCase()
		geocoder.On("Reverse", ctx, domain.Point{Lat: 48.8566, Lon: 2.3522}).
			Return(&domain.GeocodeResult{Address: "Paris, France"}, nil)

		g, err := uc.FromSlug(ctx, "48.8566,2.3522")

		require.NoError(t, err)
		assert.Equal(t, "Paris, France", g.Address)
		assert.Equal(t, "48.8566,2.3522", g.Slug())
	})

	t.Run("lookup failure keeps the slug as address", func(t *testing.T) {
		uc, _, geocoder, logs := newObservedGeoUseCase()
		geocoder.On("Reverse", ctx, mock.Anything).Return(nil, stderrors.New("timeout"))

		g, err := uc.FromSlug(ctx, "-33.9,151.2")

		require.NoError(t, err)
		assert.Equal(t, "-33.9,151.2", g.Address)
		assert.Equal(t, domain.Point{Lat: -33.9, Lon: 151.2}, g.Location)
		assert.Equal(t, 1, logs.FilterMessage("Reverse geocoding failed, using slug as address").Len())
	})

	t.Run("malformed slug", func(t *testing.T) {
		uc, _, geocoder, _ := newObservedGeoUseCase()

		_, err := uc.FromSlug(ctx, "north,east")

		requireField(t, err, errors.ErrInvalidCoordinates, "slug")
		geocoder.AssertNotCalled(t, "Reverse", mock.Anything, mock.Anything)
	})

	t.Run("out of range", func(t *testing.T) {
		uc, _, _, _ := newObservedGeoUseCase()

		_, err := uc.FromSlug(ctx, "91,0")

		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}

func TestGeoLocationUseCase_Related(t *testing.T) {
	ctx := context.Background()
	uc, repo, geocoder, _ := newObservedGeoUseCase()
	related := uc.Related()

	t.Run("load returns stored values", func(t *testing.T) {
		repo.On("GetByID", ctx, int64(4)).Return(&domain.GeoLocation{
			ID:       4,
			Address:  "Lille",
			Location: domain.Point{Lat: 50.63, Lon: 3.06},
		}, nil)

		values, err := related.Load(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, "Lille", values["address"])
		assert.Equal(t, float64(4), values["id"])
	})

	t.Run("save updates the given id", func(t *testing.T) {
		geocoder.On("Geocode", ctx, "Nantes").Return(&domain.GeocodeResult{
			Address:  "Nantes, France",
			Location: domain.Point{Lat: 47.21, Lon: -1.55},
		}, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(g *domain.GeoLocation) bool {
			return g.ID == 7
		})).Return(nil)

		values, err := related.Save(ctx, 7, map[string]any{"address": "Nantes"})

		require.NoError(t, err)
		assert.Equal(t, float64(7), values["id"])
		assert.Equal(t, "Nantes, France", values["address"])
		assert.Equal(t, -1.55, values["lon"])
	})
}

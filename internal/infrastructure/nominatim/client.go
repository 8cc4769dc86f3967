package nominatim

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/learning-catalog/internal/config"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/metrics"
	"go.uber.org/zap"
)

// ErrNoResult is returned when the provider answers but finds nothing.
var ErrNoResult = errors.New("nominatim: no result")

// place is one entry of a Nominatim answer. Coordinates come as strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}

func (p place) result() (*domain.GeocodeResult, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return &domain.GeocodeResult{
		Address:  p.DisplayName,
		Location: domain.Point{Lat: lat, Lon: lon},
	}, nil
}

type client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a geocoder backed by a Nominatim-compatible API.
// Requests are never retried.
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.Geocoder {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	return &client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Geocode returns the first match for address
func (c *client) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	start := time.Now()

	var places []place
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      address,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&places).
		Get("/search")

	res, err := c.finish("search", resp, err, start, func() (*domain.GeocodeResult, error) {
		if len(places) == 0 {
			return nil, ErrNoResult
		}
		return places[0].result()
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Address geocoded",
		zap.String("address", address),
		zap.Float64("lat", res.Location.Lat),
		zap.Float64("lon", res.Location.Lon))
	return res, nil
}

// Reverse returns the address found at p
func (c *client) Reverse(ctx context.Context, p domain.Point) (*domain.GeocodeResult, error) {
	start := time.Now()

	var found place
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":    strconv.FormatFloat(p.Lat, 'f', -1, 64),
			"lon":    strconv.FormatFloat(p.Lon, 'f', -1, 64),
			"format": "json",
		}).
		SetResult(&found).
		Get("/reverse")

	return c.finish("reverse", resp, err, start, func() (*domain.GeocodeResult, error) {
		if found.Error != "" || found.DisplayName == "" {
			return nil, ErrNoResult
		}
		return found.result()
	})
}

// finish turns a raw resty outcome into a result and records metrics.
func (c *client) finish(op string, resp *resty.Response, err error, start time.Time,
	decode func() (*domain.GeocodeResult, error)) (*domain.GeocodeResult, error) {

	if err == nil && resp.StatusCode() != http.StatusOK {
		err = fmt.Errorf("nominatim %s: status %d", op, resp.StatusCode())
	}
	var res *domain.GeocodeResult
	if err == nil {
		res, err = decode()
	}

	metrics.RecordGeocode(op, err == nil, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("nominatim %s: %w", op, err)
	}
	return res, nil
}

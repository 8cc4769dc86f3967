package repository

import (
	"context"
	"time"

	"github.com/learning-catalog/internal/domain"
)

// CacheRepository defines the cache used in front of the database
type CacheRepository interface {
	// Get returns the raw value stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present
	Exists(ctx context.Context, key string) (bool, error)

	// GetResource returns a cached resource, or nil on a miss
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)

	// SetResource caches a resource
	SetResource(ctx context.Context, r *domain.Resource, ttl time.Duration) error

	// InvalidateResource drops a cached resource and every cached search
	InvalidateResource(ctx context.Context, id int64) error

	// GetSearch returns a cached search page, or nil on a miss
	GetSearch(ctx context.Context, key string) (*domain.SearchPage, error)

	// SetSearch caches a search page
	SetSearch(ctx context.Context, key string, page *domain.SearchPage, ttl time.Duration) error
}

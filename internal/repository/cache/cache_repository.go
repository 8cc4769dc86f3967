package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Key prefixes
const (
	resourceKeyPrefix = "catalog:resource:"
	searchKeyPrefix   = "catalog:search:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func (r *cacheRepository) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	var res domain.Resource
	found, err := r.getJSON(ctx, resourceKey(id), &res)
	if err != nil || !found {
		return nil, err
	}
	return &res, nil
}

func (r *cacheRepository) SetResource(ctx context.Context, res *domain.Resource, ttl time.Duration) error {
	return r.setJSON(ctx, resourceKey(res.ID), res, ttl)
}

// InvalidateResource drops the resource entry and all cached searches,
// since any of them may list the resource.
func (r *cacheRepository) InvalidateResource(ctx context.Context, id int64) error {
	if err := r.Delete(ctx, resourceKey(id)); err != nil {
		return err
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, searchKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to scan search cache", zap.Error(err))
		return fmt.Errorf("cache scan error: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to drop search cache", zap.Int("keys", len(keys)), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	r.logger.Debug("Search cache invalidated", zap.Int64("resource_id", id), zap.Int("keys", len(keys)))
	return nil
}

func (r *cacheRepository) GetSearch(ctx context.Context, key string) (*domain.SearchPage, error) {
	var page domain.SearchPage
	found, err := r.getJSON(ctx, searchKeyPrefix+key, &page)
	if err != nil || !found {
		return nil, err
	}
	return &page, nil
}

func (r *cacheRepository) SetSearch(ctx context.Context, key string, page *domain.SearchPage, ttl time.Duration) error {
	return r.setJSON(ctx, searchKeyPrefix+key, page, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}

func resourceKey(id int64) string {
	return resourceKeyPrefix + strconv.FormatInt(id, 10)
}

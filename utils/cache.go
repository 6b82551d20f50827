package utils

import (
	"MediaVault/internal/repo"
	"MediaVault/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get reads a cached value.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set writes a cached value.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, string(data), expiration).Err()
}

// Delete removes a cache entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Exists checks whether a cache key exists.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// noopCache is used when Redis is not configured; every read misses.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return redis.Nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, key string) error { return nil }
func (noopCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

type CacheManager struct {
	cache Cache
}

var globalCacheManager *CacheManager
var cacheManagerOnce sync.Once

// InitCacheManager initializes the cache manager.
func InitCacheManager() {
	cacheManagerOnce.Do(func() {
		if repo.Redis == nil {
			globalCacheManager = &CacheManager{cache: noopCache{}}
			return
		}
		globalCacheManager = &CacheManager{
			cache: NewRedisCache(repo.Redis),
		}
	})
}

// GetCacheManager returns the cache manager.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		InitCacheManager()
	}
	return globalCacheManager
}

// BuildCacheKey builds a cache key.
func BuildCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += fmt.Sprintf(":%v", param)
	}
	return key
}

const (
	CacheKeyMediaItem   = "media:item"
	CacheKeySystemStats = "stats:system"
)

// GetMediaItemFromCache reads a cached media item.
func GetMediaItemFromCache(ctx context.Context, mediaId string) (*model.MediaItem, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaItem, mediaId)

	var result model.MediaItem
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetMediaItemToCache writes a cached media item.
func SetMediaItemToCache(ctx context.Context, mediaId string, data *model.MediaItem, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaItem, mediaId)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateMediaItemCache clears a cached media item.
func InvalidateMediaItemCache(ctx context.Context, mediaId string) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaItem, mediaId)
	return manager.cache.Delete(ctx, key)
}

// GetSystemStatsFromCache reads cached system stats into dest.
func GetSystemStatsFromCache(ctx context.Context, dest interface{}) bool {
	manager := GetCacheManager()
	return manager.cache.Get(ctx, CacheKeySystemStats, dest) == nil
}

// SetSystemStatsToCache writes cached system stats.
func SetSystemStatsToCache(ctx context.Context, data interface{}, expiration time.Duration) error {
	manager := GetCacheManager()
	return manager.cache.Set(ctx, CacheKeySystemStats, data, expiration)
}

// InvalidateSystemStatsCache clears cached system stats.
func InvalidateSystemStatsCache(ctx context.Context) error {
	manager := GetCacheManager()
	return manager.cache.Delete(ctx, CacheKeySystemStats)
}

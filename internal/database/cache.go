package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Cache wraps Redis for short-lived response caching
type Cache struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewCache(client *redis.Client, logger *logrus.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

// Cache key constants
const (
	SearchResultsKey = "search:results:%s"
	AdminStatsKey    = "admin:stats"
)

// CacheSearchResults caches search results for a query hash
func (c *Cache) CacheSearchResults(ctx context.Context, queryHash string, results interface{}, expiration time.Duration) error {
	key := fmt.Sprintf(SearchResultsKey, queryHash)

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	return c.client.Set(ctx, key, data, expiration).Err()
}

// GetCachedSearchResults retrieves cached search results
func (c *Cache) GetCachedSearchResults(ctx context.Context, queryHash string, result interface{}) error {
	key := fmt.Sprintf(SearchResultsKey, queryHash)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// InvalidateSearchCache removes cached results for a query hash
func (c *Cache) InvalidateSearchCache(ctx context.Context, queryHash string) error {
	key := fmt.Sprintf(SearchResultsKey, queryHash)
	return c.client.Del(ctx, key).Err()
}

// CacheAdminStats caches the admin dashboard stats payload
func (c *Cache) CacheAdminStats(ctx context.Context, stats interface{}, expiration time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal admin stats: %w", err)
	}

	return c.client.Set(ctx, AdminStatsKey, data, expiration).Err()
}

// GetCachedAdminStats retrieves the cached admin dashboard stats payload
func (c *Cache) GetCachedAdminStats(ctx context.Context, result interface{}) error {
	data, err := c.client.Get(ctx, AdminStatsKey).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// ClearAllCache clears all cache data
func (c *Cache) ClearAllCache(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

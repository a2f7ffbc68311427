package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	searchKeyPrefix   = "videos:search:"
	trendingKeyPrefix = "videos:trending:"
	searchTTL         = 10 * time.Minute
	trendingTTL       = time.Hour
)

// Cache keeps recent search pages and trending lists in Redis so repeated
// browsing does not burn YouTube API quota. A nil Cache disables caching.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func searchKey(query, pageToken string) string {
	return fmt.Sprintf("%s%s:%s", searchKeyPrefix, query, pageToken)
}

func trendingKey(region string) string {
	return trendingKeyPrefix + region
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *Cache) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, ttl)
}

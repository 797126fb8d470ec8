package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kwesi-koranteng/cityhub-backend/models"
)

const (
	statsCacheKey = "cityhub:stats:projects"
	statsCacheTTL = 5 * time.Minute
)

// StatsCache keeps the admin dashboard counters in redis. All methods degrade
// to no-ops when redis is not configured, so callers never branch on it.
type StatsCache struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

func (c *StatsCache) Get(ctx context.Context) (*models.ProjectStats, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both behave as a miss
		return nil, false
	}
	var stats models.ProjectStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats *models.ProjectStats) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.client.Set(ctx, statsCacheKey, data, statsCacheTTL)
}

func (c *StatsCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, statsCacheKey)
}

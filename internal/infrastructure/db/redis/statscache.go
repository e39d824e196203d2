package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tasksea/marketplace-api/internal/core/ports"
)

const (
	statsKey = "admin:dashboard_stats"
	statsTTL = time.Minute
)

// StatsCache caches the admin dashboard aggregate in Redis so repeated
// dashboard loads do not fan out six counts per request.
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats, or (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*ports.DashboardStats, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the stats snapshot (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, stats *ports.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey, raw, statsTTL).Err()
}

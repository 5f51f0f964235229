package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache is a Redis-backed cache for dashboard aggregates. Optional: when
// GlobalStatsCache is nil, handlers fall back to computing stats per request.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var GlobalStatsCache *StatsCache

func NewStatsCache(redisURL string, ttl time.Duration) (*StatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &StatsCache{client: client, ttl: ttl}, nil
}

// Get unmarshals the cached value for key into dest. Returns false on a miss.
func (sc *StatsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := sc.client.Get(ctx, "stats:"+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get stats from cache: %v", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached stats: %v", err)
	}
	return true, nil
}

func (sc *StatsCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}

	if err := sc.client.Set(ctx, "stats:"+key, data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %v", err)
	}
	return nil
}

// Client exposes the underlying connection so other redis-backed concerns
// (rate limiting) can share it.
func (sc *StatsCache) Client() *redis.Client {
	return sc.client
}

func (sc *StatsCache) Close() error {
	return sc.client.Close()
}

package resultcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/scoreboard.net/internal/core/ports/primary"
	"gitlab.com/scoreboard.net/internal/core/ports/secondary"
	"gitlab.com/scoreboard.net/internal/domain"
)

const (
	generationKey    = "results:generation"
	resultsKeyPrefix = "results:all:"
)

var (
	_ secondary.ResultCache = (*ResultCache)(nil)
	_ secondary.ResultCache = NoopCache{}
)

// ResultCache keeps the full result list as one JSON value in Redis
type ResultCache struct {
	redisClient *redis.Client
	logger      primary.Logger
	ttl         time.Duration
}

func NewResultCache(redisClient *redis.Client, logger primary.Logger, ttl time.Duration) *ResultCache {
	return &ResultCache{
		redisClient: redisClient,
		logger:      logger,
		ttl:         ttl,
	}
}

func resultsKey(generation int64) string {
	return fmt.Sprintf("%s%d", resultsKeyPrefix, generation)
}

// Get returns the cached list for the current generation. A missing key is a
// miss, not an error.
func (c *ResultCache) Get(ctx context.Context) ([]*domain.Result, int64, bool, error) {
	generation, err := c.redisClient.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("failed to read cache generation: %w", err)
	}

	data, err := c.redisClient.Get(ctx, resultsKey(generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false, nil
	}
	if err != nil {
		return nil, generation, false, fmt.Errorf("failed to read cached results: %w", err)
	}

	results := make([]*domain.Result, 0)
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, generation, false, fmt.Errorf("failed to unmarshal cached results: %w", err)
	}

	return results, generation, true, nil
}

func (c *ResultCache) Set(ctx context.Context, generation int64, results []*domain.Result) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := c.redisClient.Set(ctx, resultsKey(generation), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache results: %w", err)
	}

	c.logger.Debug("Cached results", "generation", generation, "count", len(results))
	return nil
}

func (c *ResultCache) Invalidate(ctx context.Context) error {
	if err := c.redisClient.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached results: %w", err)
	}
	return nil
}

// NoopCache is used when Redis is not configured; every read is a miss
type NoopCache struct{}

func (NoopCache) Get(context.Context) ([]*domain.Result, int64, bool, error) {
	return nil, 0, false, nil
}

func (NoopCache) Set(context.Context, int64, []*domain.Result) error { return nil }

func (NoopCache) Invalidate(context.Context) error { return nil }

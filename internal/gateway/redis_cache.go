package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/config"
)

// RedisCache keeps raw upstream bodies in Redis for a short TTL so that a
// burst of page views does not fan out to the API.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisCache creates a RedisCache.
func NewRedisCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCache {
	return &RedisCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "upstream_cache").Logger(),
	}
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, path string) ([]byte, bool) {
	body, err := r.rdb.Get(ctx, config.CacheKey.UpstreamResponseKey(path)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Str("path", path).Msg("cache read failed")
		}
		return nil, false
	}
	return body, true
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, path string, body []byte) {
	if err := r.rdb.Set(ctx, config.CacheKey.UpstreamResponseKey(path), body, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("cache write failed")
	}
}

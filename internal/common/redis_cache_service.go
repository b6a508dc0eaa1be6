package common

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"userhub/backend/internal/logging"
)

// RedisCacheService implements CacheInterface using Redis. Redis errors
// degrade to cache misses.
type RedisCacheService struct {
	client *redis.Client
}

// Ensure RedisCacheService implements CacheInterface
var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService creates a Redis-backed cache over client
func NewRedisCacheService(client *redis.Client) *RedisCacheService {
	return &RedisCacheService{client: client}
}

func (r *RedisCacheService) Set(ctx context.Context, key string, value []byte, duration time.Duration) {
	if err := r.client.Set(ctx, key, value, duration).Err(); err != nil {
		logging.Warn("Redis cache: failed to set key", "key", key, "error", err.Error())
	}
}

func (r *RedisCacheService) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis cache: failed to get key", "key", key, "error", err.Error())
		return nil, false
	}
	return data, true
}

func (r *RedisCacheService) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		logging.Warn("Redis cache: failed to delete key", "key", key, "error", err.Error())
	}
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

package common

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache used when no Redis is configured
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	return &CacheService{cache: cache.New(defaultExpiration, cleanUpInterval)}
}

func (cs *CacheService) Set(_ context.Context, key string, value []byte, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(_ context.Context, key string) ([]byte, bool) {
	val, found := cs.cache.Get(key)
	if !found {
		return nil, false
	}
	b, ok := val.([]byte)
	return b, ok
}

func (cs *CacheService) Delete(_ context.Context, key string) {
	cs.cache.Delete(key)
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}

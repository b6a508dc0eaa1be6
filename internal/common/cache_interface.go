package common

import (
	"context"
	"time"
)

// CacheInterface defines the contract for cache implementations.
// Values are opaque bytes; callers own serialization.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(ctx context.Context, key string, value []byte, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(ctx context.Context, key string) ([]byte, bool)

	// Delete removes a value from cache by key
	Delete(ctx context.Context, key string)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"userhub/backend/internal/config"
	"userhub/backend/internal/logging"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	logging.Info("Initializing Redis client", "addr", cfg.Addr())

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Still return the client, the pool reconnects on demand
		logging.Warn("Failed to ping Redis", "error", err.Error())
		return client
	}

	logging.Info("Connected to Redis")
	return client
}

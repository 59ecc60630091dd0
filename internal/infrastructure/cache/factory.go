package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and pings it
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// New builds the tag cache selected by cfg.Driver. client may be nil unless the
// driver is redis.
func New(cfg config.CacheConfig, client redis.UniversalClient, logger *zap.Logger) (TagCache, error) {
	switch cfg.Driver {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("cache driver redis requires a redis client")
		}
		logger.Info("Using Redis tag cache", zap.String("prefix", cfg.KeyPrefix))
		return NewRedisTagCache(client, cfg.KeyPrefix, logger), nil
	case "none":
		logger.Info("Read cache disabled")
		return NopTagCache{}, nil
	default:
		logger.Info("Using in-memory tag cache")
		return NewMemoryTagCache(WithMemoryLogger(logger)), nil
	}
}

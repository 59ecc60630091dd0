package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// tag sets outlive the keys they index so a late Set never lands in an expired set
const tagSetTTL = 24 * time.Hour

// RedisTagCache stores values as plain keys and keeps one Redis set per tag
// listing the keys carrying it
type RedisTagCache struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

// NewRedisTagCache creates a tag cache on an existing client
func NewRedisTagCache(client redis.UniversalClient, keyPrefix string, logger *zap.Logger) *RedisTagCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTagCache{client: client, prefix: keyPrefix, logger: logger}
}

func (c *RedisTagCache) valueKey(key string) string {
	return c.prefix + "cache:" + key
}

func (c *RedisTagCache) tagKey(tag string) string {
	return c.prefix + "tag:" + tag
}

// Get returns the value stored under key
func (c *RedisTagCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.valueKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key for ttl and adds the key to each tag set
func (c *RedisTagCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}
	vk := c.valueKey(key)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, vk, value, ttl)
		for _, tag := range tags {
			tk := c.tagKey(tag)
			pipe.SAdd(ctx, tk, vk)
			pipe.Expire(ctx, tk, tagSetTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// InvalidateTags deletes every key listed in the tag sets, then the sets themselves
func (c *RedisTagCache) InvalidateTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}
	toDelete := make([]string, 0, len(tags))
	for _, tag := range tags {
		tk := c.tagKey(tag)
		members, err := c.client.SMembers(ctx, tk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("cache invalidate %s: %w", tag, err)
		}
		toDelete = append(toDelete, members...)
		toDelete = append(toDelete, tk)
	}
	if err := c.client.Del(ctx, toDelete...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	c.logger.Debug("Invalidated cache tags", zap.Strings("tags", tags), zap.Int("keys", len(toDelete)-len(tags)))
	return nil
}

var _ TagCache = (*RedisTagCache)(nil)

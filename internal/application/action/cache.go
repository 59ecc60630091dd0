package action

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Cache is the tag cache the pipeline reads through and invalidates
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	InvalidateTags(ctx context.Context, tags ...string) error
}

// EntityTag names the cache tag of one record, e.g. client:{id}
func EntityTag(entity string, id uuid.UUID) string {
	return entity + ":" + id.String()
}

// CollectionTag names the cache tag of an organization's collection,
// e.g. organizations:{orgId}:clients
func CollectionTag(orgID uuid.UUID, collection string) string {
	return fmt.Sprintf("organizations:%s:%s", orgID, collection)
}

// ScopedKey names a cached record inside its organization so that a member of
// one organization never reads another organization's entry.
func ScopedKey(orgID uuid.UUID, entity string, id uuid.UUID) string {
	return fmt.Sprintf("organizations:%s:%s:%s", orgID, entity, id)
}

// Remember returns the cached JSON value under key, or loads, caches and returns it.
// Cache failures are logged and fall through to load.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, tags []string, load func(context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx)
	if c != nil {
		raw, ok, err := c.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			log.Warn("cache entry undecodable", zap.String("key", key))
		}
	}

	value, err := load(ctx)
	if err != nil || c == nil {
		return value, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := c.Set(ctx, key, raw, ttl, tags...); err != nil {
		log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

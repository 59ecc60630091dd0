package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// TagCache stores opaque values under keys and lets callers drop every key
// carrying a tag in one call
type TagCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	InvalidateTags(ctx context.Context, tags ...string) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
	tags      []string
}

func (e *memoryEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryTagCache is a process-local TagCache
type MemoryTagCache struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	tagIndex map[string]map[string]struct{}
	logger   *zap.Logger
	now      func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// MemoryOption configures a MemoryTagCache
type MemoryOption func(*MemoryTagCache)

// WithMemoryLogger sets the logger
func WithMemoryLogger(logger *zap.Logger) MemoryOption {
	return func(c *MemoryTagCache) {
		c.logger = logger
	}
}

// NewMemoryTagCache creates an in-memory tag cache and starts its cleanup loop.
// Call Close to stop it.
func NewMemoryTagCache(opts ...MemoryOption) *MemoryTagCache {
	c := &MemoryTagCache{
		entries:  make(map[string]*memoryEntry),
		tagIndex: make(map[string]map[string]struct{}),
		logger:   zap.NewNop(),
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.cleanupLoop(defaultCleanupInterval)
	return c
}

// Get returns the value stored under key
func (c *MemoryTagCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if entry.isExpired(c.now()) {
		c.removeLocked(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key for ttl and indexes it by tags
func (c *MemoryTagCache) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)
	c.entries[key] = &memoryEntry{value: value, expiresAt: c.now().Add(ttl), tags: tags}
	for _, tag := range tags {
		keys, ok := c.tagIndex[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tagIndex[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

// InvalidateTags drops every key carrying one of the tags
func (c *MemoryTagCache) InvalidateTags(_ context.Context, tags ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for _, tag := range tags {
		for key := range c.tagIndex[tag] {
			c.removeLocked(key)
			dropped++
		}
		delete(c.tagIndex, tag)
	}
	if dropped > 0 {
		c.logger.Debug("Invalidated cache tags", zap.Strings("tags", tags), zap.Int("keys", dropped))
	}
	return nil
}

// Len returns the number of live entries
func (c *MemoryTagCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the cleanup loop
func (c *MemoryTagCache) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		<-c.doneCh
	})
}

func (c *MemoryTagCache) removeLocked(key string) {
	entry, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	for _, tag := range entry.tags {
		if keys, ok := c.tagIndex[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tagIndex, tag)
			}
		}
	}
}

func (c *MemoryTagCache) cleanupLoop(interval time.Duration) {
	defer close(c.doneCh)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *MemoryTagCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if entry.isExpired(now) {
			c.removeLocked(key)
		}
	}
}

// NopTagCache never stores anything
type NopTagCache struct{}

func (NopTagCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NopTagCache) Set(context.Context, string, []byte, time.Duration, ...string) error { return nil }

func (NopTagCache) InvalidateTags(context.Context, ...string) error { return nil }

var (
	_ TagCache = (*MemoryTagCache)(nil)
	_ TagCache = NopTagCache{}
)

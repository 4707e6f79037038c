package storage

import (
	"context"
	"sync"
	"time"
)

var _ APIKeyCache = (*MemoryAPIKeyCache)(nil)

type apiKeyCacheEntry struct {
	key       CachedAPIKey
	expiresAt time.Time
}

type MemoryAPIKeyCache struct {
	mu      sync.RWMutex
	entries map[string]apiKeyCacheEntry

	done      chan struct{}
	closeOnce sync.Once
	interval  time.Duration
}

const defaultCacheCleanupInterval = time.Minute

func NewMemoryAPIKeyCache(cleanupInterval time.Duration) *MemoryAPIKeyCache {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCacheCleanupInterval
	}
	c := &MemoryAPIKeyCache{
		entries:  make(map[string]apiKeyCacheEntry),
		done:     make(chan struct{}),
		interval: cleanupInterval,
	}
	go c.cleanupLoop()
	return c
}

func (c *MemoryAPIKeyCache) Get(_ context.Context, keyHash string) (CachedAPIKey, error) {
	c.mu.RLock()
	entry, ok := c.entries[keyHash]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return CachedAPIKey{}, ErrNotFound
	}
	return entry.key, nil
}

func (c *MemoryAPIKeyCache) Set(_ context.Context, keyHash string, key CachedAPIKey, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[keyHash] = apiKeyCacheEntry{
		key:       key,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryAPIKeyCache) Delete(_ context.Context, keyHash string) error {
	c.mu.Lock()
	delete(c.entries, keyHash)
	c.mu.Unlock()
	return nil
}

func (c *MemoryAPIKeyCache) cleanupLoop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

func (c *MemoryAPIKeyCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	for hash, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, hash)
		}
	}
	c.mu.Unlock()
}

func (c *MemoryAPIKeyCache) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

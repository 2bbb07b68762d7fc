package cache

import "time"

// LayeredCache puts a memory layer in front of a persistent backend. The
// memory layer is purely an optimization: the persistent backend remains the
// source of truth and the memory layer may be dropped at any time.
type LayeredCache struct {
	memory     Cache
	persistent Cache
}

// NewLayeredCache wraps the given persistent backend with a memory layer.
// memoryTTL bounds how long entries stay in the memory layer only.
func NewLayeredCache(memoryTTL time.Duration, persistent Cache) *LayeredCache {
	return &LayeredCache{
		memory:     NewMemoryCache(memoryTTL, 10*time.Minute),
		persistent: persistent,
	}
}

// Get checks memory first, then the persistent backend, promoting hits.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.persistent.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.persistent.Set(key, value, ttl); err != nil {
		return err
	}
	// Memory write happens after the persistent one so a failed persist never
	// leaves a memory-only entry that would vanish on restart.
	return c.memory.Set(key, value, ttl)
}

// Delete removes a value from both layers.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.persistent.Delete(key)
}

// Clear removes all values from both layers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.persistent.Clear()
}

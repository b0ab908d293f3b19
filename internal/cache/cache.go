package cache

import (
	"context"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// FetchFunc loads the value for key on a cache miss.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Cache memoizes fetch results for ttl. Errors are not cached; zero values
// are.
type Cache[K comparable, V any] struct {
	fetch FetchFunc[K, V]
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[K]*entry[V]
}

func New[K comparable, V any](fetch func(ctx context.Context, key K) (V, error), ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		fetch:   fetch,
		ttl:     ttl,
		entries: make(map[K]*entry[V]),
	}
}

func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Since(e.fetchedAt) < c.ttl {
		return e.value, nil
	}

	value, err := c.fetch(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = &entry[V]{
		value:     value,
		fetchedAt: time.Now(),
	}
	c.mu.Unlock()

	return value, nil
}

// Forget drops key so the next Get fetches it again.
func (c *Cache[K, V]) Forget(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

package utils

import (
	"sync"
	"time"
)

// Cache is a single-value TTL cache. Report reads tolerate eventual
// consistency, so a short-lived cached copy is acceptable.
type Cache[T any] struct {
	value      T
	expiration time.Time
	mutex      sync.RWMutex
}

// NewCache initializes a new cache with an empty value.
func NewCache[T any]() *Cache[T] {
	var zero T
	return &Cache[T]{value: zero}
}

// Set stores a new value with an expiration time.
func (c *Cache[T]) Set(value T, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.value = value
	c.expiration = time.Now().Add(ttl)
}

// Get retrieves the cached value if it has not expired.
func (c *Cache[T]) Get() (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if time.Now().After(c.expiration) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Clear removes the cached value.
func (c *Cache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var zero T
	c.value = zero
	c.expiration = time.Time{}
}

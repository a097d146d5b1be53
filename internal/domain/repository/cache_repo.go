package repository

import (
	"time"
)

// CacheRepository defines the cache operations backing the public listing
// cache.
type CacheRepository interface {
	// SetJSON marshals the value and stores it under the key with a TTL.
	SetJSON(key string, value interface{}, expiration time.Duration) error
	// GetJSON loads and unmarshals the value stored under the key. Returns
	// ErrNotFound on a cache miss.
	GetJSON(key string, dest interface{}) error
	// DeleteByPattern removes every key matching the glob pattern.
	DeleteByPattern(pattern string) error
}

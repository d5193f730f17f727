// Package cache stores upstream responses between runs.
//
// Caching is opt-in: the default [NullCache] never stores anything, so every
// run talks to GitHub directly. [FileCache] keeps entries under the user's
// cache directory and [RedisCache] shares them through a Redis server.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true on a hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// Key joins parts into a namespaced cache key, e.g. "github:pull:woocommerce/woocommerce:123".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// GetJSON reads key from c and unmarshals it into v.
// An entry that no longer decodes is treated as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and stores it under key. It returns the encoded size.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(data), c.Set(ctx, key, data, ttl)
}

package observability

import (
	"context"
	"sync"
	"time"
)

// Counter tallies HTTP and cache events. It implements both [HTTPHooks] and
// [CacheHooks] and is safe for concurrent use. The zero value is ready.
type Counter struct {
	mu    sync.Mutex
	stats Stats
}

// Stats is a point-in-time copy of a [Counter].
type Stats struct {
	Requests    int
	Errors      int
	RateLimited int // 403 responses
	Elapsed     time.Duration
	CacheHits   int
	CacheMisses int
	CacheBytes  int
}

// Snapshot returns the current totals.
func (c *Counter) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Counter) OnRequest(context.Context, string, string, string) {
	c.mu.Lock()
	c.stats.Requests++
	c.mu.Unlock()
}

func (c *Counter) OnResponse(_ context.Context, _, _, _ string, status int, d time.Duration) {
	c.mu.Lock()
	if status == 403 {
		c.stats.RateLimited++
	}
	c.stats.Elapsed += d
	c.mu.Unlock()
}

func (c *Counter) OnError(context.Context, string, string, string, error) {
	c.mu.Lock()
	c.stats.Errors++
	c.mu.Unlock()
}

func (c *Counter) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.stats.CacheHits++
	c.mu.Unlock()
}

func (c *Counter) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.stats.CacheMisses++
	c.mu.Unlock()
}

func (c *Counter) OnCacheSet(_ context.Context, _ string, size int) {
	c.mu.Lock()
	c.stats.CacheBytes += size
	c.mu.Unlock()
}

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/denchenko/userdir/internal/log"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// InMemoryCache is an in-memory thread-safe cache with per-entry absolute expiry.
// Expired entries are dropped lazily on Get, or in bulk by Sweep.
type InMemoryCache struct {
	entries sync.Map // map[string]*entry
	now     func() time.Time
}

// Option configures an InMemoryCache.
type Option func(*InMemoryCache)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(c *InMemoryCache) {
		c.now = now
	}
}

// NewInMemoryCache creates a new in-memory cache instance.
func NewInMemoryCache(opts ...Option) *InMemoryCache {
	c := &InMemoryCache{
		entries: sync.Map{},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get retrieves a value by key from the cache.
func (c *InMemoryCache) Get(key string) (any, bool) {
	cached, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	e, ok := cached.(*entry)
	if !ok {
		return nil, false
	}

	if c.expired(e) {
		// Only drop the entry we saw; a concurrent Set may have replaced it.
		c.entries.CompareAndDelete(key, e)

		return nil, false
	}

	return e.value, true
}

// Set stores a value in the cache until now+ttl.
// A non-positive ttl drops any existing entry for key instead.
func (c *InMemoryCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		c.entries.Delete(key)

		return
	}

	c.entries.Store(key, &entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	})
}

// Sweep removes every expired entry and returns how many were removed.
func (c *InMemoryCache) Sweep() int {
	removed := 0

	c.entries.Range(func(key, value any) bool {
		if e, ok := value.(*entry); ok && c.expired(e) {
			if c.entries.CompareAndDelete(key, e) {
				removed++
			}
		}

		return true
	})

	return removed
}

// RunJanitor sweeps expired entries every interval until ctx is done.
// onSweep, if not nil, receives the number of entries removed by each sweep.
func (c *InMemoryCache) RunJanitor(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := c.Sweep()
			if removed > 0 {
				log.Debugf("cache janitor removed %d expired entries", removed)
			}
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

// An entry stays valid up to and including its expiration instant.
func (c *InMemoryCache) expired(e *entry) bool {
	return c.now().After(e.expiresAt)
}

package aggregate

import (
	"sync"
	"time"
)

type cacheEntry struct {
	view      *View
	expiresAt time.Time
}

// Cache holds one composite view per user with a fixed TTL. The clock is
// injected so expiry is testable. Entries are only evicted by expiry checks
// on read; at one entry per active user that is enough.
type Cache struct {
	mu      sync.Mutex
	entries map[int64]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{
		entries: make(map[int64]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *Cache) Get(userID int64) (*View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, userID)
		return nil, false
	}
	return entry.view, true
}

func (c *Cache) Put(userID int64, view *View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{view: view, expiresAt: c.now().Add(c.ttl)}
}

func (c *Cache) Invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

package corpus

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MKLambda/uscsearch/pkg/types"
)

// cacheEntry pairs a loaded title with its expiration time.
type cacheEntry struct {
	title     *types.Title
	expiresAt time.Time
}

// titleCache is an LRU of loaded titles with a per-entry TTL. The clock
// is injected so expiry can be driven deterministically in tests. A zero
// TTL means entries never expire and are only evicted by LRU pressure.
type titleCache struct {
	mu    sync.RWMutex
	lru   *lru.Cache[int, *cacheEntry]
	ttl   time.Duration
	clock func() time.Time
}

func newTitleCache(size int, ttl time.Duration, clock func() time.Time) (*titleCache, error) {
	c, err := lru.New[int, *cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &titleCache{lru: c, ttl: ttl, clock: clock}, nil
}

// get returns the cached title for number, or nil on a miss or an expired
// entry. Expired entries are removed under the write lock.
func (c *titleCache) get(number int) *types.Title {
	c.mu.RLock()
	entry, found := c.lru.Get(number)
	if !found {
		c.mu.RUnlock()
		return nil
	}

	if c.ttl > 0 && c.clock().After(entry.expiresAt) {
		c.mu.RUnlock()

		c.mu.Lock()
		c.lru.Remove(number)
		c.mu.Unlock()
		return nil
	}

	title := entry.title
	c.mu.RUnlock()
	return title
}

// put stores a loaded title. Titles are immutable, so the entry is shared
// with callers rather than copied.
func (c *titleCache) put(number int, title *types.Title) {
	entry := &cacheEntry{title: title}
	if c.ttl > 0 {
		entry.expiresAt = c.clock().Add(c.ttl)
	}

	c.mu.Lock()
	c.lru.Add(number, entry)
	c.mu.Unlock()
}

// purge drops every cached entry.
func (c *titleCache) purge() {
	c.mu.Lock()
	c.lru.Purge()
	c.mu.Unlock()
}

// len returns the number of live entries, counting expired ones until
// they are touched.
func (c *titleCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

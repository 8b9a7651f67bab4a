package odatafilter

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ParseCache is a bounded cache mapping filter text and range variable to the
// parsed tree. It is designed to be shared across requests so that repeated
// identical filter strings (common in load tests and batch traffic) do not
// incur tokenizing, resolution, and tree building every time.
//
// Eviction strategy: when the cache reaches its capacity limit the entire map
// is replaced. This is simpler than a true LRU and sufficient for the target
// use-case (a small number of distinct filter templates repeated many times).
//
// Thread safety: all methods are safe for concurrent use. Cached trees are
// immutable and may be shared between goroutines.
type ParseCache struct {
	mu    sync.RWMutex
	items map[uint64]*FilterQueryOption
	max   int
}

// DefaultParseCacheCapacity bounds caches created with a non-positive
// capacity.
const DefaultParseCacheCapacity = 256

// NewParseCache creates a cache holding at most capacity parsed trees.
func NewParseCache(capacity int) *ParseCache {
	if capacity <= 0 {
		capacity = DefaultParseCacheCapacity
	}
	return &ParseCache{
		items: make(map[uint64]*FilterQueryOption, capacity),
		max:   capacity,
	}
}

// cacheKey hashes the expression text and range variable name. A NUL
// separator keeps ("a", "b$it") and ("ab", "$it") distinct.
func cacheKey(filterStr, rangeVar string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(filterStr)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(rangeVar)
	return h.Sum64()
}

func (c *ParseCache) get(filterStr, rangeVar string) (*FilterQueryOption, bool) {
	key := cacheKey(filterStr, rangeVar)
	c.mu.RLock()
	fq, ok := c.items[key]
	c.mu.RUnlock()
	return fq, ok
}

func (c *ParseCache) put(filterStr, rangeVar string, fq *FilterQueryOption) {
	key := cacheKey(filterStr, rangeVar)
	c.mu.Lock()
	if len(c.items) >= c.max {
		// Evict everything and start fresh rather than tracking individual entry ages.
		c.items = make(map[uint64]*FilterQueryOption, c.max)
	}
	c.items[key] = fq
	c.mu.Unlock()
}

// Len returns the number of cached trees.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

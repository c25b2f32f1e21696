package lexicon

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoised queries per Lexicon.
const DefaultCacheSize = 10240

// matchCache memoises segmentation results per query string. It is owned by
// exactly one Lexicon and must be invalidated by every mutation of it.
type matchCache struct {
	results *lru.Cache[string, []Segmentation]
	hits    atomic.Int64
	misses  atomic.Int64
}

func newMatchCache(size int) *matchCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size.
	results, _ := lru.New[string, []Segmentation](size)
	return &matchCache{results: results}
}

func (c *matchCache) get(query string) ([]Segmentation, bool) {
	res, ok := c.results.Get(query)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, ok
}

func (c *matchCache) put(query string, res []Segmentation) {
	c.results.Add(query, res)
}

// invalidate drops every memoised result.
func (c *matchCache) invalidate() {
	c.results.Purge()
}

func (c *matchCache) len() int {
	return c.results.Len()
}

func (c *matchCache) stats() map[string]int {
	return map[string]int{
		"cachedQueries": c.results.Len(),
		"cacheHits":     int(c.hits.Load()),
		"cacheMisses":   int(c.misses.Load()),
	}
}

package graph

import (
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// DefaultCacheSize is the number of derived graphs kept per canonical graph
const DefaultCacheSize = 128

// CacheResult tells how a FilterCache lookup was served
type CacheResult string

const (
	CacheHit    CacheResult = "hit"
	CacheMiss   CacheResult = "miss"
	CacheShared CacheResult = "shared"
)

// FilterCache memoizes Filter results for one canonical graph. Concurrent
// lookups of the same key share a single filter pass.
type FilterCache struct {
	mu    sync.RWMutex
	graph *domain.Graph
	gen   uint64
	lru   *lru.Cache[string, *domain.Graph]
	group singleflight.Group
}

// NewFilterCache creates a cache over g holding at most size results. A
// non-positive size uses DefaultCacheSize.
func NewFilterCache(g *domain.Graph, size int) *FilterCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size
	cache, _ := lru.New[string, *domain.Graph](size)
	if g == nil {
		g = domain.NewGraph()
	}
	return &FilterCache{graph: g, lru: cache}
}

// Graph returns the canonical graph the cache filters
func (c *FilterCache) Graph() *domain.Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph
}

// Reset swaps the canonical graph and drops every memoized result
func (c *FilterCache) Reset(g *domain.Graph) {
	if g == nil {
		g = domain.NewGraph()
	}
	c.mu.Lock()
	c.graph = g
	c.gen++
	c.lru.Purge()
	c.mu.Unlock()
}

// Len returns the number of memoized results
func (c *FilterCache) Len() int {
	return c.lru.Len()
}

// Filter returns a private copy of the subgraph selected by criteria
func (c *FilterCache) Filter(criteria Criteria) (*domain.Graph, CacheResult) {
	key := criteria.Key()

	c.mu.RLock()
	g, gen := c.graph, c.gen
	c.mu.RUnlock()

	if cached, ok := c.lru.Get(key); ok {
		return cached.Clone(), CacheHit
	}

	flight := strconv.FormatUint(gen, 10) + "\x00" + key
	v, _, shared := c.group.Do(flight, func() (any, error) {
		result := Filter(g, criteria)
		c.mu.RLock()
		// a Reset while filtering makes this result stale
		if c.gen == gen {
			c.lru.Add(key, result)
		}
		c.mu.RUnlock()
		return result, nil
	})

	result := v.(*domain.Graph)
	if shared {
		return result.Clone(), CacheShared
	}
	return result.Clone(), CacheMiss
}

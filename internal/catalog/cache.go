package catalog

import (
	"context"
	"sync"
	"time"

	"eol-mcp-server/internal/logging"
)

// CachedSource wraps a Source with a time-bounded, per-key cache of catalog
// responses. It caches only successful fetches; it is strictly a transport
// optimization and never changes resolution or evaluation outcomes.
type CachedSource struct {
	source Source
	ttl    time.Duration
	logger logging.Logger

	mutex sync.RWMutex
	store map[string]*cacheEntry

	hits   int64
	misses int64

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

const cacheCleanupInterval = 5 * time.Minute

// NewCachedSource creates a caching source wrapper with the given TTL.
func NewCachedSource(source Source, ttl time.Duration, logger logging.Logger) *CachedSource {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	c := &CachedSource{
		source: source,
		ttl:    ttl,
		logger: logger.WithComponent("catalog-cache"),
		store:  make(map[string]*cacheEntry),
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go c.janitor()
	return c
}

// AllProducts returns the cached product list, fetching on miss.
func (c *CachedSource) AllProducts(ctx context.Context) ([]string, error) {
	const key = "products"
	if cached, ok := c.get(key); ok {
		return cached.([]string), nil
	}

	products, err := c.source.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.set(key, products)
	return products, nil
}

// Cycles returns the cached cycle list for a product, fetching on miss.
func (c *CachedSource) Cycles(ctx context.Context, product string) ([]map[string]interface{}, error) {
	key := "cycles/" + product
	if cached, ok := c.get(key); ok {
		return cached.([]map[string]interface{}), nil
	}

	cycles, err := c.source.Cycles(ctx, product)
	if err != nil {
		return nil, err
	}
	c.set(key, cycles)
	return cycles, nil
}

// Cycle returns the cached single-cycle mapping, fetching on miss.
func (c *CachedSource) Cycle(ctx context.Context, product, cycle string) (map[string]interface{}, error) {
	key := "cycle/" + product + "/" + cycle
	if cached, ok := c.get(key); ok {
		return cached.(map[string]interface{}), nil
	}

	raw, err := c.source.Cycle(ctx, product, cycle)
	if err != nil {
		return nil, err
	}
	c.set(key, raw)
	return raw, nil
}

// Close stops the janitor and closes the underlying source.
func (c *CachedSource) Close() error {
	c.once.Do(func() { close(c.stop) })
	return c.source.Close()
}

// Stats returns hit and miss counts.
func (c *CachedSource) Stats() (hits, misses int64) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hits, c.misses
}

func (c *CachedSource) get(key string) (interface{}, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		if ok {
			delete(c.store, key)
		}
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.value, true
}

func (c *CachedSource) set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.store[key] = &cacheEntry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// janitor evicts expired entries in the background so cold keys do not
// accumulate between reads.
func (c *CachedSource) janitor() {
	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *CachedSource) evictExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	evicted := 0
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			evicted++
		}
	}
	if evicted > 0 {
		c.logger.Debug("evicted expired catalog cache entries", "count", evicted)
	}
}

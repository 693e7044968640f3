// Package di provides the dependency injection container for the
// application: it assembles the catalog source chain and the status
// service from configuration.
package di

import (
	"context"
	"fmt"
	"time"

	"eol-mcp-server/internal/catalog"
	"eol-mcp-server/internal/config"
	"eol-mcp-server/internal/eol"
	"eol-mcp-server/internal/logging"
	"eol-mcp-server/internal/retry"
)

// Container holds all application dependencies. The catalog source is an
// explicitly owned handle: acquired here, released by Shutdown, never a
// module-level singleton.
type Container struct {
	Config  *config.Config
	Logger  logging.Logger
	Source  catalog.Source
	Service *eol.Service

	breaker *catalog.BreakerSource
	cache   *catalog.CachedSource
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	container.initializeCatalog()
	container.Service = eol.NewService(container.Source, logger)

	return container, nil
}

// initializeCatalog builds the catalog source chain in dependency order:
// HTTP client, retry, circuit breaker, cache. Breaker and cache layers
// are configuration-gated.
func (c *Container) initializeCatalog() {
	base := catalog.NewClient(&c.Config.Catalog, c.Logger)

	var retryConfig *retry.Config
	if c.Config.Catalog.RetryAttempts > 0 {
		retryConfig = &retry.Config{
			MaxAttempts:     c.Config.Catalog.RetryAttempts,
			InitialDelay:    200 * time.Millisecond,
			MaxDelay:        5 * time.Second,
			Multiplier:      2.0,
			RandomizeFactor: 0.1,
		}
	}
	source := catalog.NewRetrySource(base, retryConfig)

	if c.Config.Catalog.BreakerEnabled {
		c.breaker = catalog.NewBreakerSource(source, nil, c.Logger)
		source = c.breaker
	}

	if c.Config.Catalog.CacheEnabled {
		ttl := time.Duration(c.Config.Catalog.CacheTTLMinutes) * time.Minute
		c.cache = catalog.NewCachedSource(source, ttl, c.Logger)
		source = c.cache
	}

	c.Source = source
}

// GetService returns the status service instance.
func (c *Container) GetService() *eol.Service {
	return c.Service
}

// HealthCheck verifies the catalog source is reachable.
func (c *Container) HealthCheck(ctx context.Context) error {
	if _, err := c.Source.AllProducts(ctx); err != nil {
		return fmt.Errorf("catalog health check failed: %w", err)
	}
	return nil
}

// Stats reports source-chain statistics for health endpoints. Fields are
// zero for disabled layers.
func (c *Container) Stats() map[string]interface{} {
	stats := make(map[string]interface{})
	if c.breaker != nil {
		breakerStats := c.breaker.Stats()
		stats["breaker_state"] = breakerStats.State.String()
		stats["breaker_failures"] = breakerStats.TotalFailures
		stats["breaker_rejections"] = breakerStats.TotalRejections
	}
	if c.cache != nil {
		hits, misses := c.cache.Stats()
		stats["cache_hits"] = hits
		stats["cache_misses"] = misses
	}
	return stats
}

// Shutdown releases the catalog source handle. Each wrapper closes its
// inner source, so closing the outermost layer tears down the chain.
func (c *Container) Shutdown() error {
	if c.Source != nil {
		if err := c.Source.Close(); err != nil {
			return fmt.Errorf("failed to close catalog source: %w", err)
		}
	}
	return nil
}

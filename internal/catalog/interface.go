// Package catalog provides access to the endoflife.date product catalog:
// an HTTP client plus retry, circuit breaker, and cache wrappers. The
// Source handle is explicitly constructed and explicitly closed; nothing
// in this package is a package-level singleton.
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound reports a product or cycle the catalog does not track.
// Callers translate it into a data-level not-found outcome, never a crash.
var ErrNotFound = errors.New("catalog: not found")

// Source supplies raw per-product cycle mappings and the product list.
// Implementations must be safe for concurrent use.
type Source interface {
	// AllProducts returns every product name tracked by the catalog.
	AllProducts(ctx context.Context) ([]string, error)

	// Cycles returns the ordered sequence of raw cycle mappings for a
	// product, in the order the catalog supplies them.
	Cycles(ctx context.Context, product string) ([]map[string]interface{}, error)

	// Cycle returns the raw mapping for a single cycle of a product.
	// The catalog's single-cycle payload does not repeat the cycle key.
	Cycle(ctx context.Context, product, cycle string) (map[string]interface{}, error)

	// Close releases the source's resources.
	Close() error
}

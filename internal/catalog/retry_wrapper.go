package catalog

import (
	"context"
	"errors"
	"time"

	"eol-mcp-server/internal/retry"
)

// RetrySource wraps a Source with retry logic for transient transport
// failures. Not-found responses are permanent and never retried.
type RetrySource struct {
	source  Source
	retrier *retry.Retrier
}

// NewRetrySource creates a retrying source wrapper.
func NewRetrySource(source Source, config *retry.Config) Source {
	if config == nil {
		config = defaultRetryConfig()
	}
	if config.RetryIf == nil {
		config.RetryIf = isRetryableCatalogError
	}
	return &RetrySource{
		source:  source,
		retrier: retry.New(config),
	}
}

// defaultRetryConfig returns the default retry configuration for catalog
// fetches.
func defaultRetryConfig() *retry.Config {
	return &retry.Config{
		MaxAttempts:     3,
		InitialDelay:    200 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		Multiplier:      2.0,
		RandomizeFactor: 0.1,
		RetryIf:         isRetryableCatalogError,
	}
}

// isRetryableCatalogError determines if a catalog error should be retried.
func isRetryableCatalogError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}
	return retry.DefaultRetryIf(err)
}

// AllProducts fetches the product list with retries.
func (s *RetrySource) AllProducts(ctx context.Context) ([]string, error) {
	var products []string
	result := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		products, err = s.source.AllProducts(ctx)
		return err
	})
	return products, result.Err
}

// Cycles fetches a product's cycle list with retries.
func (s *RetrySource) Cycles(ctx context.Context, product string) ([]map[string]interface{}, error) {
	var cycles []map[string]interface{}
	result := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		cycles, err = s.source.Cycles(ctx, product)
		return err
	})
	return cycles, result.Err
}

// Cycle fetches a single cycle with retries.
func (s *RetrySource) Cycle(ctx context.Context, product, cycle string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	result := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		raw, err = s.source.Cycle(ctx, product, cycle)
		return err
	})
	return raw, result.Err
}

// Close closes the underlying source.
func (s *RetrySource) Close() error {
	return s.source.Close()
}

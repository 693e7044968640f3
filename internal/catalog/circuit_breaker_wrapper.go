package catalog

import (
	"context"
	"errors"
	"time"

	"eol-mcp-server/internal/circuitbreaker"
	"eol-mcp-server/internal/logging"
)

// BreakerSource wraps a Source with circuit breaker protection. Not-found
// responses are valid answers from a healthy backend and do not count as
// failures.
type BreakerSource struct {
	source Source
	cb     *circuitbreaker.CircuitBreaker
}

// NewBreakerSource creates a circuit-breaker wrapped source.
func NewBreakerSource(source Source, config *circuitbreaker.Config, logger logging.Logger) *BreakerSource {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	log := logger.WithComponent("catalog")

	if config == nil {
		config = &circuitbreaker.Config{
			FailureThreshold:      5,
			SuccessThreshold:      2,
			Timeout:               30 * time.Second,
			MaxConcurrentRequests: 3,
			OnStateChange: func(from, to circuitbreaker.State) {
				log.Warn("catalog circuit breaker state change",
					"from", from.String(), "to", to.String())
			},
		}
	}

	return &BreakerSource{
		source: source,
		cb:     circuitbreaker.New(config),
	}
}

// AllProducts fetches the product list through the breaker.
func (s *BreakerSource) AllProducts(ctx context.Context) ([]string, error) {
	var products []string
	err := s.execute(ctx, func(ctx context.Context) error {
		var err error
		products, err = s.source.AllProducts(ctx)
		return err
	})
	return products, err
}

// Cycles fetches a product's cycle list through the breaker.
func (s *BreakerSource) Cycles(ctx context.Context, product string) ([]map[string]interface{}, error) {
	var cycles []map[string]interface{}
	err := s.execute(ctx, func(ctx context.Context) error {
		var err error
		cycles, err = s.source.Cycles(ctx, product)
		return err
	})
	return cycles, err
}

// Cycle fetches a single cycle through the breaker.
func (s *BreakerSource) Cycle(ctx context.Context, product, cycle string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	err := s.execute(ctx, func(ctx context.Context) error {
		var err error
		raw, err = s.source.Cycle(ctx, product, cycle)
		return err
	})
	return raw, err
}

// execute runs fn under the breaker while keeping ErrNotFound out of the
// failure accounting.
func (s *BreakerSource) execute(ctx context.Context, fn func(context.Context) error) error {
	var opErr error
	err := s.cb.Execute(ctx, func(ctx context.Context) error {
		opErr = fn(ctx)
		if errors.Is(opErr, ErrNotFound) {
			return nil
		}
		return opErr
	})
	if err != nil {
		return err
	}
	return opErr
}

// Stats exposes breaker statistics for health reporting.
func (s *BreakerSource) Stats() circuitbreaker.Stats {
	return s.cb.GetStats()
}

// Close closes the underlying source.
func (s *BreakerSource) Close() error {
	return s.source.Close()
}

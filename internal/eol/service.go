// Package eol implements version resolution and temporal status
// evaluation over endoflife.date release cycles: given a product, a
// possibly partial version string and today's date, decide whether that
// version is still supported and whether it has reached end of life.
package eol

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"eol-mcp-server/internal/catalog"
	"eol-mcp-server/internal/errors"
	"eol-mcp-server/internal/logging"
	"eol-mcp-server/pkg/types"
)

// Service composes the catalog source with the resolver and evaluator.
// It holds no mutable state; concurrent calls are independent.
type Service struct {
	source catalog.Source
	logger logging.Logger
	clock  func() time.Time
}

// NewService creates a Service over the given catalog source.
func NewService(source catalog.Source, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Service{
		source: source,
		logger: logger.WithComponent("eol-service"),
		clock:  time.Now,
	}
}

// GetAllProducts returns every product name tracked by the catalog.
func (s *Service) GetAllProducts(ctx context.Context) (*types.AllProductsResult, error) {
	products, err := s.source.AllProducts(ctx)
	if err != nil {
		return nil, errors.NewUpstreamError("list products", err)
	}
	return &types.AllProductsResult{Products: products, Count: len(products)}, nil
}

// SearchProducts returns product names containing the query,
// case-insensitively, in catalog order.
func (s *Service) SearchProducts(ctx context.Context, query string) (*types.SearchResult, error) {
	products, err := s.source.AllProducts(ctx)
	if err != nil {
		return nil, errors.NewUpstreamError("search products", err)
	}

	needle := strings.ToLower(query)
	results := make([]string, 0)
	for _, product := range products {
		if strings.Contains(strings.ToLower(product), needle) {
			results = append(results, product)
		}
	}
	return &types.SearchResult{Results: results, Count: len(results), Query: query}, nil
}

// GetProductVersions returns all release cycles of a product. Malformed
// catalog entries are skipped, not fatal.
func (s *Service) GetProductVersions(ctx context.Context, product string) (*types.ProductInfo, error) {
	records, err := s.productRecords(ctx, product)
	if err != nil {
		return nil, err
	}
	return &types.ProductInfo{Product: product, Versions: records, Count: len(records)}, nil
}

// GetCycleDetails returns one cycle of one product via the single-cycle
// catalog endpoint.
func (s *Service) GetCycleDetails(ctx context.Context, product, cycle string) (*types.CycleDetails, error) {
	record, err := s.fetchCycle(ctx, product, cycle)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewStandardError(errors.ErrorCodeNotFound,
				"cycle '"+cycle+"' of product '"+product+"' not found in the catalog", nil)
		}
		return nil, err
	}
	return &types.CycleDetails{Product: product, Cycle: cycle, Details: *record}, nil
}

// GetStatus resolves a requested version to a cycle record and evaluates
// its support status as of today. An unresolvable version is not an
// error: it yields found=false with the worst-case pair (unsupported,
// end-of-life), because absence of data must not read as safe.
func (s *Service) GetStatus(ctx context.Context, product, version string) (*types.SupportStatus, error) {
	status := &types.SupportStatus{
		Product: product,
		Version: version,
		IsEOL:   true,
	}

	record, err := s.resolveVersion(ctx, product, version)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return status, nil
	}

	supported, eol := Evaluate(record, s.clock())
	status.Found = true
	status.CycleInfo = record
	status.IsSupported = supported
	status.IsEOL = eol
	return status, nil
}

// resolveVersion tries the direct single-cycle endpoint first and falls
// back to resolving against the full cycle list when that 404s. Only an
// unknown product is a hard failure; an unknown version resolves to nil.
func (s *Service) resolveVersion(ctx context.Context, product, version string) (*types.CycleRecord, error) {
	record, err := s.fetchCycle(ctx, product, version)
	if err == nil {
		return record, nil
	}
	if !stderrors.Is(err, catalog.ErrNotFound) {
		return nil, err
	}

	records, err := s.productRecords(ctx, product)
	if err != nil {
		return nil, err
	}
	return Resolve(version, records), nil
}

// productRecords fetches and normalizes a product's cycle list. A
// missing product maps to PRODUCT_NOT_FOUND; malformed entries are
// logged and excluded from the candidate list.
func (s *Service) productRecords(ctx context.Context, product string) ([]types.CycleRecord, error) {
	raw, err := s.source.Cycles(ctx, product)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewProductNotFoundError(product)
		}
		return nil, errors.NewUpstreamError("fetch cycles", err)
	}

	records := make([]types.CycleRecord, 0, len(raw))
	for _, entry := range raw {
		record, err := types.NewCycleRecord(entry)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping malformed cycle record",
				"product", product, "error", err.Error())
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

// fetchCycle fetches one cycle through the single-cycle endpoint. The
// endpoint omits the cycle identifier from its payload, so it is
// re-attached before normalization.
func (s *Service) fetchCycle(ctx context.Context, product, cycle string) (*types.CycleRecord, error) {
	raw, err := s.source.Cycle(ctx, product, cycle)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
		return nil, errors.NewUpstreamError("fetch cycle", err)
	}

	// Copy before mutating: the source layer may hand out shared maps.
	entry := make(map[string]interface{}, len(raw)+1)
	for k, v := range raw {
		entry[k] = v
	}
	if _, ok := entry["cycle"]; !ok {
		entry["cycle"] = cycle
	}
	record, err := types.NewCycleRecord(entry)
	if err != nil {
		return nil, errors.NewInternalError("normalizing cycle record", err)
	}
	return record, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"eol-mcp-server/internal/config"
	"eol-mcp-server/internal/logging"
	"eol-mcp-server/internal/retry"
)

const userAgent = "eol-mcp-server"

// Client is the HTTP implementation of Source against the endoflife.date
// API: /all.json, /{product}.json and /{product}/{cycle}.json.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg *config.CatalogConfig, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.WithComponent("catalog"),
	}
}

// AllProducts returns every product name tracked by the catalog.
func (c *Client) AllProducts(ctx context.Context) ([]string, error) {
	var products []string
	if err := c.getJSON(ctx, "/all.json", &products); err != nil {
		return nil, fmt.Errorf("fetching product list: %w", err)
	}
	return products, nil
}

// Cycles returns the ordered raw cycle mappings for a product.
func (c *Client) Cycles(ctx context.Context, product string) ([]map[string]interface{}, error) {
	var cycles []map[string]interface{}
	path := "/" + url.PathEscape(product) + ".json"
	if err := c.getJSON(ctx, path, &cycles); err != nil {
		return nil, fmt.Errorf("fetching cycles for %s: %w", product, err)
	}
	return cycles, nil
}

// Cycle returns the raw mapping for one cycle of a product.
func (c *Client) Cycle(ctx context.Context, product, cycle string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	path := "/" + url.PathEscape(product) + "/" + url.PathEscape(cycle) + ".json"
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("fetching cycle %s of %s: %w", cycle, product, err)
	}
	return raw, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// getJSON performs a GET and decodes the JSON body into out. A 404 maps to
// ErrNotFound; 5xx responses are marked temporary so the retry layer can
// act on them.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &retry.TemporaryError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "catalog request completed",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
		return nil

	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound

	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &retry.TemporaryError{Err: fmt.Errorf("catalog returned status %d", resp.StatusCode)}

	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
}

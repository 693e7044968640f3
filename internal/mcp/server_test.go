package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eol-mcp-server/internal/config"
	"eol-mcp-server/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires an EOLServer against a fake catalog backend.
func newTestServer(t *testing.T) *EOLServer {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/all.json":
			_, _ = w.Write([]byte(`["python","nodejs","ubuntu"]`))
		case "/python.json":
			_, _ = w.Write([]byte(`[
				{"cycle":"3.12","eol":"2028-10-02","support":"2025-04-02","latest":"3.12.4"},
				{"cycle":"3.11","eol":"2027-10-24","support":"2024-04-01","latest":"3.11.9"}
			]`))
		case "/python/3.11.json":
			_, _ = w.Write([]byte(`{"eol":"2027-10-24","support":"2024-04-01","latest":"3.11.9"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	cfg := config.DefaultConfig()
	cfg.Catalog.BaseURL = backend.URL
	cfg.Catalog.RetryAttempts = 1

	server, err := NewEOLServer(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })
	return server
}

func TestNewEOLServer(t *testing.T) {
	server := newTestServer(t)

	assert.NotNil(t, server.container)
	assert.NotNil(t, server.mcpServer)
	assert.NotNil(t, server.GetMCPServer())
	assert.NotNil(t, server.GetContainer())
}

func TestEOLServer_Start(t *testing.T) {
	server := newTestServer(t)
	assert.NoError(t, server.Start(context.Background()))
}

func TestHandleGetAllProducts(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleGetAllProducts(context.Background(), map[string]interface{}{})
	require.NoError(t, err)

	products, ok := result.(*types.AllProductsResult)
	require.True(t, ok)
	assert.Equal(t, 3, products.Count)
	assert.Contains(t, products.Products, "python")
}

func TestHandleCheckSupportStatus(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleCheckSupportStatus(context.Background(), map[string]interface{}{
		"product": "python",
		"version": "3.11",
	})
	require.NoError(t, err)

	status, ok := result.(*types.SupportStatus)
	require.True(t, ok)
	assert.True(t, status.Found)
	assert.Equal(t, "3.11", status.CycleInfo.Cycle)
}

func TestHandleCheckSupportStatus_MissingParams(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleCheckSupportStatus(context.Background(), map[string]interface{}{
		"product": "python",
	})
	require.NoError(t, err)

	payload, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, ToolCheckSupportStatus, payload["tool"])
	assert.Contains(t, payload["error"], "version")
	assert.Equal(t, "REQUIRED_FIELD", payload["code"])
}

func TestHandleGetProductVersions_UnknownProduct(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleGetProductVersions(context.Background(), map[string]interface{}{
		"product": "no-such-product",
	})
	require.NoError(t, err)

	payload, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, ToolGetProductVersions, payload["tool"])
	assert.Equal(t, "PRODUCT_NOT_FOUND", payload["code"])
}

func TestHandleSearchProducts(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleSearchProducts(context.Background(), map[string]interface{}{
		"query": "NODE",
	})
	require.NoError(t, err)

	search, ok := result.(*types.SearchResult)
	require.True(t, ok)
	assert.Equal(t, []string{"nodejs"}, search.Results)
}

func TestHandleResourceRead_Products(t *testing.T) {
	server := newTestServer(t)

	contents, err := server.handleResourceRead(context.Background(), resourceProducts)
	require.NoError(t, err)
	require.Len(t, contents, 1)
}

func TestHandleResourceRead_Search(t *testing.T) {
	server := newTestServer(t)

	contents, err := server.handleResourceRead(context.Background(), resourceSearch+"?q=ubuntu")
	require.NoError(t, err)
	require.Len(t, contents, 1)
}

func TestHandleResourceRead_SearchRequiresQuery(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleResourceRead(context.Background(), resourceSearch)
	assert.Error(t, err)
}

func TestHandleResourceRead_UnknownURI(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleResourceRead(context.Background(), "eol://bogus")
	assert.Error(t, err)
}

func TestSupportStatusSerialization(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleCheckSupportStatus(context.Background(), map[string]interface{}{
		"product": "python",
		"version": "3.11",
	})
	require.NoError(t, err)

	payload, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Contains(t, decoded, "is_supported")
	assert.Contains(t, decoded, "is_eol")
	assert.Contains(t, decoded, "cycle_info")
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"eol-mcp-server/internal/config"
	"eol-mcp-server/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.CatalogConfig{BaseURL: srv.URL, TimeoutSeconds: 5}
	return NewClient(cfg, logging.NewNoOpLogger())
}

func TestClient_AllProducts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`["python","nodejs","ubuntu"]`))
	}))

	products, err := client.AllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "nodejs", "ubuntu"}, products)
}

func TestClient_Cycles(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/python.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"cycle":"3.12","eol":"2028-10-02"},{"cycle":"3.11","eol":"2027-10-24"}]`))
	}))

	cycles, err := client.Cycles(context.Background(), "python")
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, "3.12", cycles[0]["cycle"])
	assert.Equal(t, "2027-10-24", cycles[1]["eol"])
}

func TestClient_Cycle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/python/3.11.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"eol":"2027-10-24","latest":"3.11.9"}`))
	}))

	raw, err := client.Cycle(context.Background(), "python", "3.11")
	require.NoError(t, err)
	assert.Equal(t, "2027-10-24", raw["eol"])
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.Cycles(context.Background(), "no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.Cycle(context.Background(), "python", "0.1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ServerErrorIsTemporary(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.AllProducts(context.Background())
	require.Error(t, err)
	assert.True(t, isRetryableCatalogError(err))
}

func TestRetrySource_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`["python"]`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(&config.CatalogConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logging.NewNoOpLogger())
	source := NewRetrySource(client, nil)

	products, err := source.AllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, products)
	assert.Equal(t, 3, attempts)
}

func TestRetrySource_DoesNotRetryNotFound(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(&config.CatalogConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logging.NewNoOpLogger())
	source := NewRetrySource(client, nil)

	_, err := source.Cycles(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, attempts)
}

func TestBreakerSource_NotFoundIsNotAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(&config.CatalogConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logging.NewNoOpLogger())
	source := NewBreakerSource(client, nil, logging.NewNoOpLogger())

	for i := 0; i < 10; i++ {
		_, err := source.Cycles(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	}

	stats := source.Stats()
	assert.Equal(t, int64(0), stats.TotalFailures)
	assert.Equal(t, int64(0), stats.TotalRejections)
}

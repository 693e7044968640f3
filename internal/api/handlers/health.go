// Package handlers provides HTTP handlers for the EOL server REST API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"eol-mcp-server/internal/api/response"
	"eol-mcp-server/internal/di"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	container *di.Container
	version   string
	started   time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(container *di.Container, version string) *HealthHandler {
	return &HealthHandler{
		container: container,
		version:   version,
		started:   time.Now(),
	}
}

// Handle reports overall service health, including catalog reachability
// and source-chain statistics. A degraded catalog does not fail the
// check: the service can still answer from cache.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := statusHealthy
	catalogStatus := statusHealthy
	if err := h.container.HealthCheck(ctx); err != nil {
		status = statusDegraded
		catalogStatus = err.Error()
	}

	payload := map[string]interface{}{
		"status":         status,
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"catalog":        catalogStatus,
		"source_stats":   h.container.Stats(),
	}
	response.WriteSuccess(w, payload)
}

// HandleLiveness reports process liveness only.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	response.WriteSuccess(w, map[string]string{"status": statusHealthy})
}

// HandleReadiness reports whether the catalog is reachable.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.container.HealthCheck(ctx); err != nil {
		response.WriteServiceUnavailable(w, "catalog not reachable", err.Error())
		return
	}
	response.WriteSuccess(w, map[string]string{"status": "ready"})
}

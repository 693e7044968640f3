package handlers

import (
	"net/http"

	"eol-mcp-server/internal/api/response"
	"eol-mcp-server/internal/eol"
)

// StatusHandler serves the support status endpoint.
type StatusHandler struct {
	service *eol.Service
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(service *eol.Service) *StatusHandler {
	return &StatusHandler{service: service}
}

// Check handles GET /api/v1/status?product=...&version=... An unknown
// version is a 200 with found=false, not an error.
func (h *StatusHandler) Check(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	version := r.URL.Query().Get("version")

	if product == "" {
		response.WriteBadRequest(w, "product query parameter is required")
		return
	}
	if version == "" {
		response.WriteBadRequest(w, "version query parameter is required")
		return
	}

	result, err := h.service.GetStatus(r.Context(), product, version)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, result)
}

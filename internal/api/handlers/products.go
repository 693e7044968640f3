package handlers

import (
	"net/http"

	"eol-mcp-server/internal/api/response"
	"eol-mcp-server/internal/eol"

	"github.com/go-chi/chi/v5"
)

// ProductsHandler serves the catalog browsing endpoints.
type ProductsHandler struct {
	service *eol.Service
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(service *eol.Service) *ProductsHandler {
	return &ProductsHandler{service: service}
}

// List handles GET /api/v1/products. An optional q parameter filters
// product names by case-insensitive substring.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query().Get("q"); query != "" {
		result, err := h.service.SearchProducts(r.Context(), query)
		if err != nil {
			response.WriteServiceError(w, err)
			return
		}
		response.WriteSuccess(w, result)
		return
	}

	result, err := h.service.GetAllProducts(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, result)
}

// Get handles GET /api/v1/products/{product}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	product := chi.URLParam(r, "product")

	result, err := h.service.GetProductVersions(r.Context(), product)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, result)
}

// GetCycle handles GET /api/v1/products/{product}/cycles/{cycle}.
func (h *ProductsHandler) GetCycle(w http.ResponseWriter, r *http.Request) {
	product := chi.URLParam(r, "product")
	cycle := chi.URLParam(r, "cycle")

	result, err := h.service.GetCycleDetails(r.Context(), product, cycle)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, result)
}

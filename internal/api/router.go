// Package api provides the HTTP API layer for the EOL server: a REST
// surface over the status service plus MCP-over-HTTP and SSE endpoints.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fredcamaral/gomcp-sdk/protocol"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"eol-mcp-server/internal/api/handlers"
	"eol-mcp-server/internal/api/middleware"
	"eol-mcp-server/internal/config"
	"eol-mcp-server/internal/logging"
	"eol-mcp-server/internal/mcp"
)

const apiVersion = "1.0.0"

// Router is the main API router.
type Router struct {
	config    *config.Config
	mux       *chi.Mux
	eolServer *mcp.EOLServer
	logger    logging.Logger
}

// NewRouter creates a new API router with middleware and routes.
func NewRouter(cfg *config.Config, eolServer *mcp.EOLServer, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	r := &Router{
		config:    cfg,
		mux:       chi.NewRouter(),
		eolServer: eolServer,
		logger:    logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Handler returns the HTTP handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}

// setupMiddleware configures the middleware stack.
func (r *Router) setupMiddleware() {
	r.mux.Use(chimiddleware.Recoverer)
	r.mux.Use(chimiddleware.RealIP)

	loggingMiddleware := middleware.NewLoggingMiddleware(r.logger)
	r.mux.Use(loggingMiddleware.Handler())

	corsMiddleware := middleware.NewDefaultCORSMiddleware()
	r.mux.Use(corsMiddleware.Handler())

	// Request size limit (1MB); every request body here is a JSON-RPC
	// envelope or nothing.
	r.mux.Use(chimiddleware.RequestSize(1 * 1024 * 1024))

	// Heartbeat for load balancer health checks
	r.mux.Use(chimiddleware.Heartbeat("/ping"))
}

// setupRoutes configures API routes.
func (r *Router) setupRoutes() {
	service := r.eolServer.GetContainer().GetService()

	healthHandler := handlers.NewHealthHandler(r.eolServer.GetContainer(), apiVersion)
	r.mux.Get("/health", healthHandler.Handle)
	r.mux.Get("/readiness", healthHandler.HandleReadiness)
	r.mux.Get("/liveness", healthHandler.HandleLiveness)

	r.mux.Route("/api/v1", func(rtr chi.Router) {
		// Timeout stays off the SSE stream; it applies to the REST
		// surface only.
		rtr.Use(chimiddleware.Timeout(30 * time.Second))

		rtr.Get("/health", healthHandler.Handle)

		productsHandler := handlers.NewProductsHandler(service)
		rtr.Get("/products", productsHandler.List)
		rtr.Get("/products/{product}", productsHandler.Get)
		rtr.Get("/products/{product}/cycles/{cycle}", productsHandler.GetCycle)

		statusHandler := handlers.NewStatusHandler(service)
		rtr.Get("/status", statusHandler.Check)
	})

	// MCP-over-HTTP endpoint for JSON-RPC clients
	r.mux.Post("/mcp", r.handleMCPRequest)

	// SSE endpoint: POST for JSON-RPC, GET for the event stream
	r.mux.Post("/sse", r.handleMCPRequest)
	r.mux.Get("/sse", r.handleSSEStream)
}

// handleMCPRequest processes a JSON-RPC request through the MCP server.
func (r *Router) handleMCPRequest(w http.ResponseWriter, req *http.Request) {
	var rpcReq protocol.JSONRPCRequest
	if err := json.NewDecoder(req.Body).Decode(&rpcReq); err != nil {
		http.Error(w, "Invalid JSON-RPC request", http.StatusBadRequest)
		return
	}

	resp := r.eolServer.HandleRequest(req.Context(), &rpcReq)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		r.logger.Error("failed to encode JSON-RPC response", "error", err.Error())
	}
}

// handleSSEStream keeps an event stream open with periodic heartbeats.
func (r *Router) handleSSEStream(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	_, _ = fmt.Fprintf(w, "data: {\"type\":\"connected\",\"server\":\"eol-mcp-server\",\"protocols\":[\"json-rpc\",\"sse\"]}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = fmt.Fprintf(w, "data: {\"type\":\"heartbeat\",\"timestamp\":\"%s\"}\n\n", time.Now().UTC().Format(time.RFC3339))
			flusher.Flush()
		case <-req.Context().Done():
			return
		}
	}
}

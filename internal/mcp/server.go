// Package mcp provides the MCP server implementation: it exposes the
// endoflife.date status service as MCP tools and resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"eol-mcp-server/internal/config"
	"eol-mcp-server/internal/di"
	eolerrors "eol-mcp-server/internal/errors"
	"eol-mcp-server/internal/logging"

	mcp "github.com/fredcamaral/gomcp-sdk"
	"github.com/fredcamaral/gomcp-sdk/protocol"
	"github.com/fredcamaral/gomcp-sdk/server"
)

const (
	serverName    = "eol-mcp-server"
	serverVersion = "1.0.0"

	resourceProducts = "eol://products"
	resourceSearch   = "eol://search"
)

// EOLServer implements the MCP server for endoflife.date lifecycle data.
type EOLServer struct {
	container    *di.Container
	mcpServer    *server.Server
	logger       logging.Logger
	errorHandler *eolerrors.MCPErrorHandler
}

// NewEOLServer creates a new EOL MCP server from configuration.
func NewEOLServer(cfg *config.Config, logger logging.Logger) (*EOLServer, error) {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	logger = logger.WithComponent("mcp")

	container, err := di.NewContainer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create DI container: %w", err)
	}

	eolServer := &EOLServer{
		container:    container,
		logger:       logger,
		errorHandler: eolerrors.NewMCPErrorHandler(),
	}

	mcpServer := mcp.NewServer(serverName, serverVersion)
	if mcpServer == nil {
		return nil, errors.New("failed to create MCP server instance")
	}
	eolServer.mcpServer = mcpServer

	eolServer.registerTools()
	eolServer.registerResources()

	logger.Info("EOL MCP server created", "name", serverName, "version", serverVersion)
	return eolServer, nil
}

// Start verifies the catalog is reachable. A failed health check is
// logged but not fatal: the catalog may recover while the server runs.
func (es *EOLServer) Start(ctx context.Context) error {
	if err := es.container.HealthCheck(ctx); err != nil {
		es.logger.Warn("catalog health check failed, continuing startup", "error", err.Error())
	} else {
		es.logger.Info("catalog health check passed")
	}
	return nil
}

// Close releases the catalog source handle.
func (es *EOLServer) Close() error {
	return es.container.Shutdown()
}

// GetMCPServer returns the underlying MCP server for transport wiring.
func (es *EOLServer) GetMCPServer() *server.Server {
	return es.mcpServer
}

// GetContainer returns the DI container for accessing services.
func (es *EOLServer) GetContainer() *di.Container {
	return es.container
}

// HandleRequest processes a raw JSON-RPC request. Used by the HTTP and
// SSE surfaces.
func (es *EOLServer) HandleRequest(ctx context.Context, req *protocol.JSONRPCRequest) *protocol.JSONRPCResponse {
	return es.mcpServer.HandleRequest(ctx, req)
}

// registerResources registers the browsable MCP resources.
func (es *EOLServer) registerResources() {
	resources := []struct {
		uri         string
		name        string
		description string
		mimeType    string
	}{
		{
			uri:         resourceProducts,
			name:        "All Products",
			description: "Every product tracked by the endoflife.date catalog",
			mimeType:    "application/json",
		},
		{
			uri:         resourceSearch + "?q={query}",
			name:        "Product Search",
			description: "Products whose name contains the query string",
			mimeType:    "application/json",
		},
	}

	for _, res := range resources {
		resource := mcp.NewResource(res.uri, res.name, res.description, res.mimeType)
		es.mcpServer.AddResource(resource, mcp.ResourceHandlerFunc(es.handleResourceRead))
	}
}

// handleResourceRead serves resource reads for the eol:// scheme.
func (es *EOLServer) handleResourceRead(ctx context.Context, uri string) ([]protocol.Content, error) {
	switch {
	case uri == resourceProducts:
		result, err := es.container.GetService().GetAllProducts(ctx)
		if err != nil {
			return nil, err
		}
		return jsonContent(result)

	case strings.HasPrefix(uri, resourceSearch):
		parsed, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid resource URI: %s", uri)
		}
		query := parsed.Query().Get("q")
		if query == "" {
			return nil, eolerrors.ErrQueryRequired
		}
		result, err := es.container.GetService().SearchProducts(ctx, query)
		if err != nil {
			return nil, err
		}
		return jsonContent(result)

	default:
		return nil, fmt.Errorf("unknown resource URI: %s", uri)
	}
}

func jsonContent(v interface{}) ([]protocol.Content, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource payload: %w", err)
	}
	return []protocol.Content{protocol.NewContent(string(payload))}, nil
}

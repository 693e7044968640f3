// server is the EOL MCP Server binary. It exposes endoflife.date
// lifecycle data over MCP (stdio or HTTP/JSON-RPC with SSE) plus a
// small REST surface.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fredcamaral/gomcp-sdk/transport"

	"eol-mcp-server/internal/api"
	"eol-mcp-server/internal/config"
	"eol-mcp-server/internal/logging"
	"eol-mcp-server/internal/mcp"
)

func main() {
	var (
		mode = flag.String("mode", "stdio", "Server mode: stdio or http")
		addr = flag.String("addr", "", "HTTP server address (when mode=http); defaults to host:port from config")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Logging.Level))

	eolServer, err := mcp.NewEOLServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create EOL server", "error", err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := eolServer.Start(ctx); err != nil {
		logger.Fatal("Failed to start EOL server", "error", err.Error())
	}

	switch *mode {
	case "stdio":
		logger.Info("Starting EOL MCP server in stdio mode")
		runStdio(ctx, eolServer, logger)

	case "http":
		listenAddr := *addr
		if listenAddr == "" {
			listenAddr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		}
		logger.Info("Starting EOL MCP server in HTTP mode", "addr", listenAddr)
		if err := runHTTP(ctx, cfg, eolServer, logger, listenAddr); err != nil {
			logger.Error("HTTP server failed", "error", err.Error())
		}

	default:
		logger.Error("Invalid mode, use 'stdio' or 'http'", "mode", *mode)
	}

	if err := eolServer.Close(); err != nil {
		logger.Error("Error during shutdown", "error", err.Error())
	}
}

// runStdio serves the MCP protocol over stdin/stdout.
func runStdio(ctx context.Context, eolServer *mcp.EOLServer, logger logging.Logger) {
	mcpServer := eolServer.GetMCPServer()
	mcpServer.SetTransport(transport.NewStdioTransport())

	if err := mcpServer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server failed", "error", err.Error())
	}
}

// runHTTP serves the REST API plus MCP-over-HTTP and SSE endpoints.
func runHTTP(ctx context.Context, cfg *config.Config, eolServer *mcp.EOLServer, logger logging.Logger, addr string) error {
	router := api.NewRouter(cfg, eolServer, logger)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			"addr", addr,
			"mcp_endpoint", "/mcp",
			"sse_endpoint", "/sse",
			"api_prefix", "/api/v1")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Parent context is already cancelled; shutdown needs its own.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	return httpServer.Shutdown(shutdownCtx)
}

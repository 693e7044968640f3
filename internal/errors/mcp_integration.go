// Package errors provides MCP-specific error handling utilities
package errors

import (
	"errors"

	"github.com/fredcamaral/gomcp-sdk/protocol"
	"github.com/google/uuid"
)

// MCPErrorHandler provides MCP-specific error handling functionality
type MCPErrorHandler struct {
	traceIDGenerator func() string
}

// NewMCPErrorHandler creates a new MCP error handler
func NewMCPErrorHandler() *MCPErrorHandler {
	return &MCPErrorHandler{
		traceIDGenerator: generateTraceID,
	}
}

// HandleJSONRPCError processes errors for JSON-RPC responses (MCP protocol)
func (h *MCPErrorHandler) HandleJSONRPCError(err error, id interface{}) *protocol.JSONRPCResponse {
	if err == nil {
		return nil
	}

	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.WithTraceID(h.traceIDGenerator()).WithProtocol("json-rpc").ToJSONRPCError(id)
	}

	stdErr = NewInternalError("Request processing failed", err)
	return stdErr.WithTraceID(h.traceIDGenerator()).WithProtocol("json-rpc").ToJSONRPCError(id)
}

// ValidateRequiredParams validates required parameters for MCP tools
func (h *MCPErrorHandler) ValidateRequiredParams(params map[string]interface{}, required []string) *StandardError {
	for _, field := range required {
		if value, exists := params[field]; !exists || value == nil || value == "" {
			return NewRequiredFieldError(field)
		}
	}
	return nil
}

// ToolErrorResult builds the structured payload returned by a tool call
// that failed: the error, the failing tool, and the arguments it was given.
// Tool failures are reported as data rather than protocol errors so that
// the client always sees which operation failed and with what input.
func ToolErrorResult(tool string, arguments map[string]interface{}, err error) map[string]interface{} {
	result := map[string]interface{}{
		"error":     err.Error(),
		"tool":      tool,
		"arguments": arguments,
	}

	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		result["code"] = string(stdErr.ErrorInfo.Code)
	}

	return result
}

// generateTraceID produces a trace ID for error correlation
func generateTraceID() string {
	return uuid.New().String()
}

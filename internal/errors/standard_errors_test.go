package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_ToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *StandardError
		want int
	}{
		{"required field", NewRequiredFieldError("product"), http.StatusBadRequest},
		{"validation", NewValidationError("version", "must be a string", 42), http.StatusBadRequest},
		{"product not found", NewProductNotFoundError("nothing"), http.StatusNotFound},
		{"upstream", NewUpstreamError("fetch_cycles", errors.New("boom")), http.StatusBadGateway},
		{"internal", NewInternalError("broken", nil), http.StatusInternalServerError},
		{"unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.ToHTTPStatus())
		})
	}
}

func TestStandardError_ToJSONRPCError(t *testing.T) {
	err := NewProductNotFoundError("ghost").WithTraceID("trace-1").WithProtocol("json-rpc")
	resp := err.ToJSONRPCError(7)

	require.NotNil(t, resp.Error)
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, -32601, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "ghost")
}

func TestMCPErrorHandler_ValidateRequiredParams(t *testing.T) {
	h := NewMCPErrorHandler()

	stdErr := h.ValidateRequiredParams(map[string]interface{}{"product": "python"}, []string{"product", "version"})
	require.NotNil(t, stdErr)
	assert.Equal(t, ErrorCodeRequiredField, stdErr.ErrorInfo.Code)

	assert.Nil(t, h.ValidateRequiredParams(
		map[string]interface{}{"product": "python", "version": "3.11"},
		[]string{"product", "version"},
	))
}

func TestMCPErrorHandler_HandleJSONRPCError(t *testing.T) {
	h := NewMCPErrorHandler()

	resp := h.HandleJSONRPCError(errors.New("plain failure"), "req-1")
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32603, resp.Error.Code)
}

func TestToolErrorResult(t *testing.T) {
	args := map[string]interface{}{"product": "nodejs", "version": "x"}
	result := ToolErrorResult("eol_check_support_status", args, NewUpstreamError("fetch_cycles", errors.New("timeout")))

	assert.Equal(t, "eol_check_support_status", result["tool"])
	assert.Equal(t, args, result["arguments"])
	assert.Equal(t, string(ErrorCodeUpstreamError), result["code"])
	assert.Contains(t, result["error"], "Catalog request failed")
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsValidationError(NewRequiredFieldError("query")))
	assert.True(t, IsNotFoundError(NewProductNotFoundError("x")))
	assert.True(t, IsSystemError(NewUpstreamError("op", nil)))
	assert.False(t, IsSystemError(NewRequiredFieldError("query")))
}

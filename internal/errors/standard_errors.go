// Package errors provides standardized error handling across the MCP and
// HTTP surfaces of the EOL server.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fredcamaral/gomcp-sdk/protocol"
)

// ErrorCode represents semantic error codes for consistent error handling
type ErrorCode string

const (
	// Validation errors
	ErrorCodeValidationError ErrorCode = "VALIDATION_ERROR"
	ErrorCodeRequiredField   ErrorCode = "REQUIRED_FIELD"
	ErrorCodeInvalidFormat   ErrorCode = "INVALID_FORMAT"

	// Resource errors
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"

	// Catalog and record errors
	ErrorCodeUpstreamError   ErrorCode = "UPSTREAM_ERROR"
	ErrorCodeMalformedRecord ErrorCode = "MALFORMED_RECORD"

	// System errors
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout            ErrorCode = "TIMEOUT"
)

// StandardError represents the unified error structure across all protocols
type StandardError struct {
	ErrorInfo ErrorDetails `json:"error"`
}

// Error implements the Go error interface
func (e *StandardError) Error() string {
	return e.ErrorInfo.Message
}

// ErrorDetails contains the detailed error information
type ErrorDetails struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Protocol string      `json:"protocol,omitempty"`
	TraceID  string      `json:"trace_id,omitempty"`
}

// ValidationDetail provides specific validation error information
type ValidationDetail struct {
	Field  string      `json:"field"`
	Reason string      `json:"reason"`
	Value  interface{} `json:"value,omitempty"`
}

// NewStandardError creates a new standardized error
func NewStandardError(code ErrorCode, message string, details interface{}) *StandardError {
	return &StandardError{
		ErrorInfo: ErrorDetails{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(field, reason string, value interface{}) *StandardError {
	return &StandardError{
		ErrorInfo: ErrorDetails{
			Code:    ErrorCodeValidationError,
			Message: fmt.Sprintf("Validation failed for field '%s': %s", field, reason),
			Details: ValidationDetail{
				Field:  field,
				Reason: reason,
				Value:  value,
			},
		},
	}
}

// NewRequiredFieldError creates an error for missing required fields
func NewRequiredFieldError(field string) *StandardError {
	return &StandardError{
		ErrorInfo: ErrorDetails{
			Code:    ErrorCodeRequiredField,
			Message: fmt.Sprintf("Required field '%s' is missing", field),
			Details: ValidationDetail{
				Field:  field,
				Reason: "missing_required_field",
			},
		},
	}
}

// NewProductNotFoundError creates an error for a product the catalog does
// not track. Note that an unknown version of a known product is NOT an
// error; it is a found=false status result.
func NewProductNotFoundError(product string) *StandardError {
	return &StandardError{
		ErrorInfo: ErrorDetails{
			Code:    ErrorCodeProductNotFound,
			Message: fmt.Sprintf("Product '%s' is not tracked by the catalog", product),
			Details: map[string]interface{}{
				"product": product,
			},
		},
	}
}

// NewUpstreamError creates an error for catalog transport failures
func NewUpstreamError(operation string, originalError error) *StandardError {
	details := map[string]interface{}{
		"operation": operation,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if originalError != nil {
		details["original_error"] = originalError.Error()
	}

	return &StandardError{
		ErrorInfo: ErrorDetails{
			Code:    ErrorCodeUpstreamError,
			Message: "Catalog request failed",
			Details: details,
		},
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string, originalError error) *StandardError {
	details := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if originalError != nil {
		details["original_error"] = originalError.Error()
	}

	return &StandardError{
		ErrorInfo: ErrorDetails{
			Code:    ErrorCodeInternalError,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error for debugging
func (e *StandardError) WithTraceID(traceID string) *StandardError {
	e.ErrorInfo.TraceID = traceID
	return e
}

// WithProtocol adds protocol information to the error
func (e *StandardError) WithProtocol(protocolName string) *StandardError {
	e.ErrorInfo.Protocol = protocolName
	return e
}

// ToJSONRPCError converts StandardError to JSON-RPC error format
func (e *StandardError) ToJSONRPCError(id interface{}) *protocol.JSONRPCResponse {
	var rpcCode int
	switch e.ErrorInfo.Code {
	case ErrorCodeValidationError, ErrorCodeRequiredField, ErrorCodeInvalidFormat, ErrorCodeMalformedRecord:
		rpcCode = -32602 // Invalid params
	case ErrorCodeNotFound, ErrorCodeProductNotFound:
		rpcCode = -32601 // Method not found (closest equivalent)
	case ErrorCodeInternalError:
		rpcCode = -32603 // Internal error
	case ErrorCodeUpstreamError:
		rpcCode = -32000 // Server error (custom range)
	case ErrorCodeServiceUnavailable, ErrorCodeTimeout:
		rpcCode = -32002 // Server error (custom range)
	default:
		rpcCode = -32603 // Internal error (fallback)
	}

	return &protocol.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &protocol.JSONRPCError{
			Code:    rpcCode,
			Message: e.ErrorInfo.Message,
			Data:    e,
		},
	}
}

// ToHTTPStatus maps StandardError to appropriate HTTP status code
func (e *StandardError) ToHTTPStatus() int {
	switch e.ErrorInfo.Code {
	case ErrorCodeValidationError, ErrorCodeRequiredField, ErrorCodeInvalidFormat, ErrorCodeMalformedRecord:
		return http.StatusBadRequest
	case ErrorCodeNotFound, ErrorCodeProductNotFound:
		return http.StatusNotFound
	case ErrorCodeUpstreamError:
		return http.StatusBadGateway
	case ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ToJSON converts StandardError to JSON bytes
func (e *StandardError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WriteHTTPError writes StandardError as HTTP response
func (e *StandardError) WriteHTTPError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	if e.ErrorInfo.TraceID != "" {
		w.Header().Set("X-Trace-ID", e.ErrorInfo.TraceID)
	}

	w.WriteHeader(e.ToHTTPStatus())

	jsonBytes, _ := e.ToJSON()
	_, _ = w.Write(jsonBytes)
}

// Predefined common errors for convenience
var (
	ErrProductRequired = NewRequiredFieldError("product")
	ErrVersionRequired = NewRequiredFieldError("version")
	ErrCycleRequired   = NewRequiredFieldError("cycle")
	ErrQueryRequired   = NewRequiredFieldError("query")

	ErrInternalServer     = NewInternalError("Internal server error occurred", nil)
	ErrServiceUnavailable = NewStandardError(ErrorCodeServiceUnavailable, "Service temporarily unavailable", nil)
)

// IsValidationError checks if the error is a validation-related error
func IsValidationError(err *StandardError) bool {
	return err.ErrorInfo.Code == ErrorCodeValidationError ||
		err.ErrorInfo.Code == ErrorCodeRequiredField ||
		err.ErrorInfo.Code == ErrorCodeInvalidFormat
}

// IsNotFoundError checks if the error is a not-found error
func IsNotFoundError(err *StandardError) bool {
	return err.ErrorInfo.Code == ErrorCodeNotFound ||
		err.ErrorInfo.Code == ErrorCodeProductNotFound
}

// IsSystemError checks if the error is a system-level error
func IsSystemError(err *StandardError) bool {
	return err.ErrorInfo.Code == ErrorCodeInternalError ||
		err.ErrorInfo.Code == ErrorCodeServiceUnavailable ||
		err.ErrorInfo.Code == ErrorCodeTimeout ||
		err.ErrorInfo.Code == ErrorCodeUpstreamError
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"
	ErrorTypeHTTP       ErrorType = "http"

	// Authentication errors
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"

	// Validation errors
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeInvalidFormat ErrorType = "invalid_format"

	// Server errors
	ErrorTypeServer   ErrorType = "server"
	ErrorTypeNotFound ErrorType = "not_found"
	ErrorTypeConflict ErrorType = "conflict"
	ErrorTypeRefused  ErrorType = "refused"

	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Field      string
	Cause      error
	Suggestion string
	StatusCode int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, cause)
	err.Suggestion = "Check that the API is running and that api.base_url points at it."
	return err
}

// ConnectionError reports that nothing accepted the connection at the API root
func ConnectionError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeConnection, "Connection refused by the API", cause)
	err.Suggestion = "Start the API or point api.base_url (or --api-url) at a running one."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", cause)
	err.Suggestion = "Raise api.timeout or try again in a moment."
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeUnauthorized, "The API rejected the request as unauthenticated", cause)
	err.StatusCode = http.StatusUnauthorized
	err.Suggestion = "Store a valid token with 'deploydash auth login'."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "Access denied", cause)
	err.StatusCode = http.StatusForbidden
	err.Suggestion = "Your token does not grant this operation."
	return err
}

// ValidationError creates a validation error for one input field
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	err := NewCLIError(ErrorTypeValidation, message, nil)
	err.Field = field
	return err
}

// InvalidFormatError reports a malformed flag or argument
func InvalidFormatError(what, value, expected string) *CLIError {
	err := NewCLIError(ErrorTypeInvalidFormat, fmt.Sprintf("Invalid %s: %q", what, value), nil)
	err.Suggestion = "Expected " + expected + "."
	return err
}

// ServerError creates a server error
func ServerError(message string, cause error) *CLIError {
	if message == "" {
		message = "Server error"
	}
	err := NewCLIError(ErrorTypeServer, message, cause)
	err.StatusCode = http.StatusInternalServerError
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	err := NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
	err.StatusCode = http.StatusNotFound
	return err
}

// ConflictError creates a conflict error
func ConflictError(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeConflict, message, cause)
	err.StatusCode = http.StatusConflict
	return err
}

// RefusedError wraps a 400 answer: the server understood the request and
// declined it.
func RefusedError(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeRefused, message, cause)
	err.StatusCode = http.StatusBadRequest
	return err
}

// fromAPIError maps a decoded error response onto the taxonomy. The server's
// own text is kept as the message.
func fromAPIError(apiErr *api.APIError) *CLIError {
	msg := apiErr.Detail()
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		return UnauthorizedError(apiErr)
	case apiErr.StatusCode == http.StatusForbidden:
		return ForbiddenError(apiErr)
	case apiErr.StatusCode == http.StatusNotFound:
		err := NewCLIError(ErrorTypeNotFound, msg, apiErr)
		err.StatusCode = apiErr.StatusCode
		return err
	case apiErr.StatusCode == http.StatusConflict:
		return ConflictError(msg, apiErr)
	case apiErr.StatusCode == http.StatusBadRequest:
		return RefusedError(msg, apiErr)
	case apiErr.StatusCode >= 500:
		err := ServerError(msg, apiErr)
		err.StatusCode = apiErr.StatusCode
		return err
	default:
		err := NewCLIError(ErrorTypeHTTP, msg, apiErr)
		err.StatusCode = apiErr.StatusCode
		return err
	}
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return fromAPIError(apiErr)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimeoutError(err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) || strings.Contains(err.Error(), "connection refused") {
		return ConnectionError(err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NetworkError("Could not connect to the API", err)
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "timeout"):
		return TimeoutError(err)
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("Suggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

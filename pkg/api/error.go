package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// APIError represents an API error response
type APIError struct {
	StatusCode int
	Message    string
	Details    string
	Path       string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// Detail is the text shown to the user: the server's details when present,
// otherwise its message.
func (e *APIError) Detail() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Message
}

// ParseError parses an error response from the API
func ParseError(resp *resty.Response) error {
	statusCode := resp.StatusCode()

	var body ErrorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && (body.Message != "" || body.Details != "") {
		return &APIError{
			StatusCode: statusCode,
			Message:    body.Message,
			Details:    body.Details,
			Path:       body.Path,
		}
	}

	message := strings.TrimSpace(string(resp.Body()))
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// CheckResponse checks if response is successful and returns error if not
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return ParseError(resp)
	}

	return nil
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// IsConflict checks if the server rejected a duplicate key or a forbidden deletion
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsBadRequest checks if the server refused the request payload
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}

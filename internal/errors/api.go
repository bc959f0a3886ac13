package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from TMDb. StatusCode is the HTTP status,
// TMDBCode and Message come from the body's status_code/status_message.
type APIError struct {
	StatusCode int
	TMDBCode   int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb: unexpected status %d: %s (code %d)", e.StatusCode, e.Message, e.TMDBCode)
	}
	return fmt.Sprintf("tmdb: unexpected status %d", e.StatusCode)
}

// NewAPIError creates an APIError.
func NewAPIError(statusCode, tmdbCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, TMDBCode: tmdbCode, Message: message}
}

// IsNotFound reports whether err is a TMDb 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return stdErrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuthError reports whether err means the API key or session was refused.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !stdErrors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// RequestRejectedError is a 2xx response whose body reported success:false.
type RequestRejectedError struct {
	TMDBCode int
	Message  string
}

func (e *RequestRejectedError) Error() string {
	if e.Message == "" {
		return "tmdb: request rejected"
	}
	return fmt.Sprintf("tmdb: request rejected: %s (code %d)", e.Message, e.TMDBCode)
}

// NewRequestRejectedError creates a RequestRejectedError.
func NewRequestRejectedError(tmdbCode int, message string) *RequestRejectedError {
	return &RequestRejectedError{TMDBCode: tmdbCode, Message: message}
}

// IsRequestRejected reports whether err is a RequestRejectedError.
func IsRequestRejected(err error) bool {
	var rejected *RequestRejectedError
	return stdErrors.As(err, &rejected)
}

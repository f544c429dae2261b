package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non-2xx response from the backend.
// The message is the backend's best-effort "error" field, falling back to
// the HTTP status text.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 backend response.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 backend response.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// isRetryable reports whether a response status is worth retrying:
// rate limits and server-side failures. Client errors are not retried.
func isRetryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

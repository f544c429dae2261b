// Package errors - API operation error utilities
package errors

import (
	"errors"
	"fmt"
)

// Error templates for API operations
var (
	errAPIResponseTemplate    = errors.New("API response error")
	errRateLimitTemplate      = errors.New("rate limit exceeded")
	errAuthenticationTemplate = errors.New("authentication failed")
	errStreamTemplate         = errors.New("stream error")
)

// APIResponseError creates a standardized API response error.
// This is for unexpected API responses or status codes.
//
// Example usage:
//
//	return APIResponseError(404, "repository not found")
//	// Returns: "API response error: status 404: repository not found"
func APIResponseError(statusCode int, message string) error {
	return fmt.Errorf("%w: status %d: %s", errAPIResponseTemplate, statusCode, message)
}

// IsAPIResponseError reports whether err was produced by APIResponseError.
func IsAPIResponseError(err error) bool {
	return errors.Is(err, errAPIResponseTemplate)
}

// RateLimitError creates a standardized rate limit error.
func RateLimitError(service string, resetTime string) error {
	return fmt.Errorf("%w: %s: resets at %s", errRateLimitTemplate, service, resetTime)
}

// AuthenticationError creates a standardized authentication error.
//
// Example usage:
//
//	return AuthenticationError("backend", "invalid token")
//	// Returns: "authentication failed: backend: invalid token"
func AuthenticationError(service, reason string) error {
	return fmt.Errorf("%w: %s: %s", errAuthenticationTemplate, service, reason)
}

// StreamError creates a standardized streaming error.
// Used when an SSE stream terminates abnormally or carries a malformed frame.
func StreamError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", errStreamTemplate, operation, err)
}

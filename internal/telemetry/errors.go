package telemetry

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the provider has no data for the requested
// sensor, asset, or range.
var ErrNotFound = errors.New("telemetry: no data found")

// AuthError means the provider rejected the configured API token.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("telemetry: provider rejected credentials (status %d)", e.Status)
}

// RateLimitError means the provider throttled the request. The caller is
// expected to surface it; the client never retries.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "telemetry: provider rate limit exceeded"
}

// StatusError covers any other non-2xx provider response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("telemetry: unexpected provider status %d: %s", e.Status, e.Body)
}

// IsAuth reports whether err is a credential rejection.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

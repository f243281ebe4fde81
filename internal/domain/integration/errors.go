package integration

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// POS integration errors
// ---------------------------------------------------------------------------

var (
	// Credential errors
	ErrMissingCredentials = errors.New("integration: pos client credentials not configured")
	ErrAuthFailed         = errors.New("integration: pos authentication failed")

	// Webhook errors
	ErrInvalidSignature = errors.New("integration: invalid webhook signature")
	ErrMalformedPayload = errors.New("integration: malformed webhook payload")
)

// RemoteAPIError reports a non-2xx response from the POS public API.
// Callers decide retry policy; the client itself never retries.
type RemoteAPIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("integration: remote api returned status %d: %s", e.StatusCode, e.Body)
}

// IsRemoteAPIError reports whether err wraps a *RemoteAPIError
func IsRemoteAPIError(err error) (*RemoteAPIError, bool) {
	var apiErr *RemoteAPIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

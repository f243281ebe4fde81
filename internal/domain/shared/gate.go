package shared

import (
	"context"
	"fmt"
	"time"
)

// OperationGate guards expensive operations with a per-key cooldown.
// Allow returns nil and starts a new cooldown window when the key is
// cold; it returns *RateLimitedError while the window is still open.
type OperationGate interface {
	Allow(ctx context.Context, key string) error
}

// RateLimitedError reports that an operation was invoked again before
// its cooldown expired.
type RateLimitedError struct {
	Key        string
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("operation %q rate limited, retry after %ds", e.Key, e.RetryAfterSeconds())
}

// RetryAfterSeconds returns the remaining cooldown rounded up to whole seconds
func (e *RateLimitedError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

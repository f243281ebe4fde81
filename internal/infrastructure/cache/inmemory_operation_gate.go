package cache

import (
	"context"
	"sync"
	"time"

	"github.com/webshop/backend/internal/domain/shared"
)

// InMemoryOperationGate implements shared.OperationGate with an in-memory
// map of last-invocation timestamps. It is advisory and process-local:
// suitable for single-instance deployments and testing.
type InMemoryOperationGate struct {
	cooldown time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

var _ shared.OperationGate = (*InMemoryOperationGate)(nil)

// NewInMemoryOperationGate creates a gate with the given cooldown window
func NewInMemoryOperationGate(cooldown time.Duration) *InMemoryOperationGate {
	return &InMemoryOperationGate{
		cooldown: cooldown,
		now:      time.Now,
		lastSeen: make(map[string]time.Time),
	}
}

// Allow records the invocation when the key is cold; within the cooldown
// window it returns *shared.RateLimitedError carrying the remaining time
func (g *InMemoryOperationGate) Allow(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if last, ok := g.lastSeen[key]; ok {
		elapsed := now.Sub(last)
		if elapsed < g.cooldown {
			return &shared.RateLimitedError{
				Key:        key,
				RetryAfter: g.cooldown - elapsed,
			}
		}
	}

	g.lastSeen[key] = now
	return nil
}

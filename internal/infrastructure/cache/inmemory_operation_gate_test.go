package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshop/backend/internal/domain/shared"
	"github.com/webshop/backend/internal/infrastructure/config"
)

func configRedisDisabled() config.RedisConfig {
	return config.RedisConfig{Enabled: false}
}

// configRedisUnreachable points at a closed local port so the connection
// attempt fails immediately with a refusal instead of a timeout.
func configRedisUnreachable() config.RedisConfig {
	return config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
}

func TestInMemoryOperationGateAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("first call passes and starts the window", func(t *testing.T) {
		gate := NewInMemoryOperationGate(time.Minute)
		assert.NoError(t, gate.Allow(ctx, "product_sync"))
	})

	t.Run("second call within cooldown reports remaining time", func(t *testing.T) {
		gate := NewInMemoryOperationGate(time.Minute)
		now := time.Now()
		gate.now = func() time.Time { return now }

		require.NoError(t, gate.Allow(ctx, "product_sync"))

		gate.now = func() time.Time { return now.Add(10 * time.Second) }
		err := gate.Allow(ctx, "product_sync")

		var rateLimited *shared.RateLimitedError
		require.True(t, errors.As(err, &rateLimited))
		assert.Equal(t, "product_sync", rateLimited.Key)
		assert.Equal(t, 50*time.Second, rateLimited.RetryAfter)
		assert.Equal(t, 50, rateLimited.RetryAfterSeconds())
	})

	t.Run("call after cooldown passes and restarts the window", func(t *testing.T) {
		gate := NewInMemoryOperationGate(time.Minute)
		now := time.Now()
		gate.now = func() time.Time { return now }

		require.NoError(t, gate.Allow(ctx, "product_sync"))

		gate.now = func() time.Time { return now.Add(61 * time.Second) }
		require.NoError(t, gate.Allow(ctx, "product_sync"))

		// The window restarted at 61s, so 70s is again inside it.
		gate.now = func() time.Time { return now.Add(70 * time.Second) }
		assert.Error(t, gate.Allow(ctx, "product_sync"))
	})

	t.Run("keys cool down independently", func(t *testing.T) {
		gate := NewInMemoryOperationGate(time.Minute)

		require.NoError(t, gate.Allow(ctx, "product_sync"))
		assert.NoError(t, gate.Allow(ctx, "product_sync_incremental"))
		assert.Error(t, gate.Allow(ctx, "product_sync"))
	})

	t.Run("denied call does not extend the window", func(t *testing.T) {
		gate := NewInMemoryOperationGate(time.Minute)
		now := time.Now()
		gate.now = func() time.Time { return now }

		require.NoError(t, gate.Allow(ctx, "product_sync"))

		gate.now = func() time.Time { return now.Add(59 * time.Second) }
		require.Error(t, gate.Allow(ctx, "product_sync"))

		gate.now = func() time.Time { return now.Add(61 * time.Second) }
		assert.NoError(t, gate.Allow(ctx, "product_sync"))
	})
}

func TestRateLimitedErrorRounding(t *testing.T) {
	err := &shared.RateLimitedError{Key: "k", RetryAfter: 49*time.Second + 500*time.Millisecond}
	assert.Equal(t, 50, err.RetryAfterSeconds())

	err = &shared.RateLimitedError{Key: "k", RetryAfter: -time.Second}
	assert.Equal(t, 0, err.RetryAfterSeconds())
}

func TestOperationGateFactory(t *testing.T) {
	t.Run("redis disabled yields in-memory gate", func(t *testing.T) {
		factory := NewOperationGateFactory(configRedisDisabled(), time.Minute)

		gate, err := factory.CreateGate()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryOperationGate{}, gate)
	})

	t.Run("unreachable redis falls back when allowed", func(t *testing.T) {
		factory := NewOperationGateFactory(configRedisUnreachable(), time.Minute,
			WithInMemoryFallback(true))

		gate, err := factory.CreateGate()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryOperationGate{}, gate)
	})

	t.Run("unreachable redis fails without fallback", func(t *testing.T) {
		factory := NewOperationGateFactory(configRedisUnreachable(), time.Minute,
			WithInMemoryFallback(false))

		gate, err := factory.CreateGate()
		assert.Error(t, err)
		assert.Nil(t, gate)
	})
}

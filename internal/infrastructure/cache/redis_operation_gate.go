package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webshop/backend/internal/domain/shared"
)

// RedisOperationGate implements shared.OperationGate on Redis so the
// cooldown is shared across instances. SET NX PX makes claiming the
// window atomic; the remaining cooldown comes from the key's PTTL.
type RedisOperationGate struct {
	client    *redis.Client
	cooldown  time.Duration
	keyPrefix string
}

var _ shared.OperationGate = (*RedisOperationGate)(nil)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisOperationGate creates a Redis-backed gate
func NewRedisOperationGate(cfg RedisConfig, cooldown time.Duration) (*RedisOperationGate, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisOperationGateWithClient(client, cooldown, ""), nil
}

// NewRedisOperationGateWithClient creates a gate with an existing Redis client
func NewRedisOperationGateWithClient(client *redis.Client, cooldown time.Duration, keyPrefix string) *RedisOperationGate {
	if keyPrefix == "" {
		keyPrefix = "sync:gate:"
	}
	return &RedisOperationGate{
		client:    client,
		cooldown:  cooldown,
		keyPrefix: keyPrefix,
	}
}

// Allow claims the cooldown window for the key, failing with
// *shared.RateLimitedError while another claim is still live
func (g *RedisOperationGate) Allow(ctx context.Context, key string) error {
	redisKey := g.keyPrefix + key

	claimed, err := g.client.SetNX(ctx, redisKey, "1", g.cooldown).Result()
	if err != nil {
		return fmt.Errorf("failed to claim operation gate: %w", err)
	}
	if claimed {
		return nil
	}

	remaining, err := g.client.PTTL(ctx, redisKey).Result()
	if err != nil || remaining < 0 {
		remaining = g.cooldown
	}
	return &shared.RateLimitedError{
		Key:        key,
		RetryAfter: remaining,
	}
}

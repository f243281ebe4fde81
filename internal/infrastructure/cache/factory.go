package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/shared"
	"github.com/webshop/backend/internal/infrastructure/config"
)

// OperationGateFactory creates operation gates based on configuration
type OperationGateFactory struct {
	redisConfig           config.RedisConfig
	cooldown              time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// OperationGateFactoryOption is a functional option for configuring the factory
type OperationGateFactoryOption func(*OperationGateFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) OperationGateFactoryOption {
	return func(f *OperationGateFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// gate when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) OperationGateFactoryOption {
	return func(f *OperationGateFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewOperationGateFactory creates a new factory
func NewOperationGateFactory(cfg config.RedisConfig, cooldown time.Duration, opts ...OperationGateFactoryOption) *OperationGateFactory {
	f := &OperationGateFactory{
		redisConfig:           cfg,
		cooldown:              cooldown,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateGate creates an operation gate. When Redis is enabled it tries a
// shared Redis gate first and falls back to the process-local in-memory
// gate if allowed; a disabled Redis always yields the in-memory gate.
func (f *OperationGateFactory) CreateGate() (shared.OperationGate, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory operation gate")
		return NewInMemoryOperationGate(f.cooldown), nil
	}

	gate, err := NewRedisOperationGate(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.cooldown)
	if err == nil {
		return gate, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("failed to create Redis operation gate: %w", err)
	}

	f.logger.Warn("redis unavailable, falling back to in-memory operation gate",
		zap.Error(err))
	return NewInMemoryOperationGate(f.cooldown), nil
}

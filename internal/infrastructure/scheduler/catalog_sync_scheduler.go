package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/domain/shared"
)

// IncrementalSyncer runs one incremental catalog sync pass
type IncrementalSyncer interface {
	SyncIncremental(ctx context.Context, since time.Time) (*appsync.SyncSummary, error)
}

// CatalogSyncSchedulerConfig holds configuration for the catalog sync scheduler
type CatalogSyncSchedulerConfig struct {
	// Enabled indicates if the scheduler is enabled
	Enabled bool
	// Interval is how often an incremental sync runs
	Interval time.Duration
	// Lookback is how far back each run looks for modified products
	Lookback time.Duration
}

// DefaultCatalogSyncSchedulerConfig returns default configuration
func DefaultCatalogSyncSchedulerConfig() CatalogSyncSchedulerConfig {
	return CatalogSyncSchedulerConfig{
		Enabled:  true,
		Interval: 15 * time.Minute,
		Lookback: 24 * time.Hour,
	}
}

// CatalogSyncScheduler periodically triggers incremental catalog syncs.
// A run denied by the operation gate is skipped quietly; the next tick
// tries again.
type CatalogSyncScheduler struct {
	syncer IncrementalSyncer
	config CatalogSyncSchedulerConfig
	logger *zap.Logger

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewCatalogSyncScheduler creates a new catalog sync scheduler
func NewCatalogSyncScheduler(syncer IncrementalSyncer, config CatalogSyncSchedulerConfig, logger *zap.Logger) *CatalogSyncScheduler {
	if config.Interval <= 0 {
		config.Interval = 15 * time.Minute
	}
	if config.Lookback <= 0 {
		config.Lookback = 24 * time.Hour
	}
	return &CatalogSyncScheduler{
		syncer: syncer,
		config: config,
		logger: logger,
	}
}

// Start launches the scheduler loop. It is a no-op when already running
// or disabled by configuration.
func (s *CatalogSyncScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("catalog sync scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("catalog sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("lookback", s.config.Lookback),
	)
	return nil
}

// Stop shuts the scheduler down, waiting for an in-flight run to finish
// or the given context to expire.
func (s *CatalogSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("catalog sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("catalog sync scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *CatalogSyncScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *CatalogSyncScheduler) runOnce(ctx context.Context) {
	since := time.Now().Add(-s.config.Lookback)

	summary, err := s.syncer.SyncIncremental(ctx, since)
	if err != nil {
		var rateLimited *shared.RateLimitedError
		if errors.As(err, &rateLimited) {
			s.logger.Debug("incremental sync skipped, operation gate closed",
				zap.Int("retry_after_seconds", rateLimited.RetryAfterSeconds()))
			return
		}
		s.logger.Error("scheduled incremental sync failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled incremental sync finished",
		zap.Int("processed", summary.Processed),
		zap.Int("filtered", summary.Filtered),
		zap.Int("synced", summary.Synced),
	)
}

package scheduler

import (
	"context"
	"time"

	"github.com/cloudnav/cloudnav/internal/logger"
	"github.com/cloudnav/cloudnav/internal/store/kvstore"
)

const (
	// DefaultKeepSnapshots is the retention count when none is configured.
	DefaultKeepSnapshots = 10
)

// GarbageCollector prunes old envelope snapshots so the key-value backend
// does not grow without bound.
type GarbageCollector struct {
	store    *kvstore.Store
	logger   logger.Logger
	interval time.Duration
	keep     int
	stopCh   chan struct{}
}

// NewGarbageCollector creates a new snapshot garbage collector.
func NewGarbageCollector(
	store *kvstore.Store,
	log logger.Logger,
	interval time.Duration,
	keep int,
) *GarbageCollector {
	if keep <= 0 {
		keep = DefaultKeepSnapshots
	}

	return &GarbageCollector{
		store:    store,
		logger:   log,
		interval: interval,
		keep:     keep,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic pruning process.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial snapshot pruning failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("snapshot pruning failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector.
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect prunes snapshots beyond the retention count.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	deleted, err := gc.store.PruneSnapshots(ctx, gc.keep)
	if err != nil {
		return err
	}

	if deleted > 0 {
		gc.logger.Info("pruned old snapshots",
			logger.Int("deleted", deleted),
			logger.Int("kept", gc.keep))
	} else {
		gc.logger.Debug("no snapshots to prune")
	}

	return nil
}

// Package scheduler hosts the background loops of the sync gateway:
// periodic envelope snapshots and snapshot retention.
package scheduler

import (
	"context"
	"time"

	"github.com/cloudnav/cloudnav/internal/logger"
	"github.com/cloudnav/cloudnav/internal/store/kvstore"
)

// Snapshotter periodically copies the live envelope to a timestamped
// snapshot key. A manual trigger channel lets the HTTP API request a
// snapshot out of cycle.
type Snapshotter struct {
	store         *kvstore.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSnapshotter creates a snapshotter.
func NewSnapshotter(
	store *kvstore.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Snapshotter {
	return &Snapshotter{
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic snapshot loop.
func (sn *Snapshotter) Start(ctx context.Context) error {
	ticker := time.NewTicker(sn.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sn.run(ctx, "schedule")
			case <-sn.manualTrigger:
				sn.run(ctx, "manual")
			case <-sn.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the snapshotter.
func (sn *Snapshotter) Stop() {
	close(sn.stopCh)
}

func (sn *Snapshotter) run(ctx context.Context, reason string) {
	key, err := sn.store.Snapshot(ctx, time.Now())
	if err != nil {
		sn.logger.Error("failed to snapshot envelope",
			logger.String("reason", reason),
			logger.Error(err))
		return
	}
	if key == "" {
		sn.logger.Debug("nothing stored yet, skipping snapshot",
			logger.String("reason", reason))
		return
	}
	sn.logger.Info("envelope snapshot written",
		logger.String("key", key),
		logger.String("reason", reason))
}

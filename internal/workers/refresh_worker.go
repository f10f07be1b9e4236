package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/services"
)

// Refresher runs one data refresh.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) (*services.RefreshResult, error)
}

// RefreshWorker refreshes all sources on a fixed interval.
type RefreshWorker struct {
	refresher Refresher
	logger    *logrus.Logger
	loop      periodic
}

func NewRefreshWorker(refresher Refresher, interval time.Duration, logger *logrus.Logger) *RefreshWorker {
	w := &RefreshWorker{refresher: refresher, logger: logger}
	w.loop = periodic{interval: interval, fn: w.run}
	return w
}

// Start begins the refresh loop. The first refresh runs immediately.
func (w *RefreshWorker) Start(ctx context.Context) {
	if w.loop.start(ctx) {
		w.logger.WithField("interval", w.loop.interval.String()).Info("Starting refresh worker")
	}
}

// Stop stops the loop and waits for a running refresh to finish.
func (w *RefreshWorker) Stop() {
	if w.loop.stop() {
		w.logger.Info("Refresh worker stopped")
	}
}

func (w *RefreshWorker) run(ctx context.Context) {
	_, err := w.refresher.Refresh(ctx, "scheduled")
	switch {
	case err == nil:
	case errors.Is(err, services.ErrRefreshInProgress):
		w.logger.Debug("Skipping scheduled refresh, another refresh is running")
	default:
		w.logger.WithError(err).Error("Scheduled refresh failed")
	}
}

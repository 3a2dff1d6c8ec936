package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

// DefaultWatchInterval is the pause between runs when none is configured.
const DefaultWatchInterval = 15 * time.Minute

// RunFunc receives the outcome of every run.
type RunFunc func(report *domain.SyncReport, err error)

// Watcher repeats synchronisation on a fixed interval.
// Runs never overlap: the next run is timed from the end of the previous one.
type Watcher struct {
	mirror   driving.MirrorService
	interval time.Duration
	onRun    RunFunc

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewWatcher creates a watcher. A non-positive interval uses
// DefaultWatchInterval; onRun may be nil.
func NewWatcher(mirror driving.MirrorService, interval time.Duration, onRun RunFunc) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Watcher{
		mirror:   mirror,
		interval: interval,
		onRun:    onRun,
	}
}

// Interval returns the pause between runs.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Start runs immediately, then once per interval. It blocks until ctx is
// cancelled or Stop is called. A failed run is reported and retried on
// the next tick.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-timer.C:
			if err := w.runOnce(ctx); err != nil {
				return err
			}
			select {
			case <-stopCh:
				return nil
			default:
			}
			timer.Reset(w.interval)
		}
	}
}

// Stop ends the loop after the current run completes.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running || w.stopCh == nil {
		return
	}
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
}

// runOnce performs one run. Only cancellation ends the loop.
func (w *Watcher) runOnce(ctx context.Context) error {
	report, err := w.mirror.Run(ctx)
	if w.onRun != nil {
		w.onRun(report, err)
	}

	switch {
	case err == nil:
		logger.Info("next run in %s", w.interval)
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return ctx.Err()
	default:
		logger.Error("sync failed, retrying in %s: %v", w.interval, err)
	}
	return nil
}

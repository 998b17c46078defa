// Package scheduler runs background jobs of the decision service.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher reloads a cache from its source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefresher reloads the catalog cache on a fixed interval. Runs never
// overlap: a tick that fires while a refresh is still running is skipped.
type CatalogRefresher struct {
	scheduler *gocron.Scheduler
	cache     Refresher
	interval  time.Duration
	logger    *slog.Logger
	stopOnce  sync.Once
}

// NewCatalogRefresher creates a refresher. It does nothing until Start.
func NewCatalogRefresher(cache Refresher, interval time.Duration, logger *slog.Logger) *CatalogRefresher {
	return &CatalogRefresher{
		scheduler: gocron.NewScheduler(time.UTC),
		cache:     cache,
		interval:  interval,
		logger:    logger,
	}
}

// Start performs one refresh synchronously, so a reachable database yields
// a ready cache before traffic is accepted, then schedules the periodic job.
// A failed initial refresh is logged and left to the next tick. The job
// stops when ctx is cancelled or Stop is called.
func (r *CatalogRefresher) Start(ctx context.Context) error {
	if r.interval <= 0 {
		return fmt.Errorf("catalog refresh interval must be positive, got %s", r.interval)
	}

	r.run(ctx)

	_, err := r.scheduler.Every(r.interval).SingletonMode().WaitForSchedule().Do(func() {
		r.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule catalog refresh: %w", err)
	}
	r.scheduler.StartAsync()
	r.logger.Info("catalog refresh scheduled", slog.Duration("interval", r.interval))

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running refresh to return. It is
// safe to call more than once.
func (r *CatalogRefresher) Stop() {
	r.stopOnce.Do(func() {
		r.scheduler.Stop()
		r.logger.Info("catalog refresh stopped")
	})
}

// run errors are already logged by the cache.
func (r *CatalogRefresher) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	_ = r.cache.Refresh(ctx)
}

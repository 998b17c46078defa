// Package catalog holds the in-memory materialised catalog of campaigns,
// creatives and targeting rules. A refresh builds a complete Snapshot off to
// the side and publishes it with a single atomic pointer swap, so readers
// never lock and always see one refresh in its entirety.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"mesa-decision/internal/core/domain"
	"mesa-decision/internal/core/port"
	"mesa-decision/internal/metrics"
)

// Cache serves the latest successfully loaded snapshot.
type Cache struct {
	source  port.CatalogSource
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	current atomic.Pointer[Snapshot]
	// refreshMu serialises refreshes; readers never take it.
	refreshMu sync.Mutex
}

// NewCache creates an empty cache over source. Each refresh is bounded by
// timeout when it is positive.
func NewCache(source port.CatalogSource, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Cache {
	return &Cache{
		source:  source,
		timeout: timeout,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Refresh performs a full reload from the catalog source. On failure the
// previous snapshot stays published and the error is returned.
func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := time.Now()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cat, err := c.source.LoadCatalog(ctx)
	if err != nil {
		c.metrics.RecordRefresh(err, time.Since(start))
		c.logger.Error("catalog refresh failed, keeping previous snapshot",
			slog.Any("error", err),
			slog.Bool("has_snapshot", c.current.Load() != nil),
		)
		return fmt.Errorf("load catalog: %w", err)
	}

	snap := Build(cat, c.now())
	c.current.Store(snap)

	elapsed := time.Since(start)
	c.metrics.RecordRefresh(nil, elapsed)
	c.metrics.SetSnapshotSize(snap.CampaignCount(), snap.CreativeCount(), snap.RuleCount())
	c.logger.Info("catalog refreshed",
		slog.Int("campaigns", snap.CampaignCount()),
		slog.Int("creatives", snap.CreativeCount()),
		slog.Int("rules", snap.RuleCount()),
		slog.Duration("elapsed", elapsed),
	)
	return nil
}

// Snapshot returns the published snapshot, or nil before the first
// successful refresh. Callers that make several lookups for one request
// should hold on to a single snapshot.
func (c *Cache) Snapshot() *Snapshot {
	return c.current.Load()
}

// Ready reports whether a snapshot has been published.
func (c *Cache) Ready() bool {
	return c.current.Load() != nil
}

// GetCampaign returns a campaign from the current snapshot.
func (c *Cache) GetCampaign(id int64) (domain.Campaign, bool) {
	s := c.current.Load()
	if s == nil {
		return domain.Campaign{}, false
	}
	return s.Campaign(id)
}

// GetRulesForCampaign returns a campaign's rules from the current snapshot.
func (c *Cache) GetRulesForCampaign(id int64) []domain.TargetingRule {
	s := c.current.Load()
	if s == nil {
		return nil
	}
	return s.Rules(id)
}

// GetCreativesForCampaign returns a campaign's creatives from the current
// snapshot.
func (c *Cache) GetCreativesForCampaign(id int64) []domain.Creative {
	s := c.current.Load()
	if s == nil {
		return nil
	}
	return s.CreativesForCampaign(id)
}

// GetCreativesBySlot returns the creatives for slotID, or all creatives
// when slotID is empty, from the current snapshot.
func (c *Cache) GetCreativesBySlot(slotID string) []domain.Creative {
	s := c.current.Load()
	if s == nil {
		return nil
	}
	return s.CreativesBySlot(slotID)
}

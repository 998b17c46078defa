// Package predictor holds the scoring backends the prediction stage can be
// configured with. Both are optional; the stage falls back to its
// heuristic whenever a backend fails.
package predictor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"mesa-decision/internal/core/domain"
)

// priorWeight is how many pseudo-impressions the default rates are worth.
const priorWeight = 100

// StatsReader returns delivery totals per campaign since a point in time.
type StatsReader interface {
	CampaignStats(ctx context.Context, campaignIDs []int64, since time.Time) (map[int64]domain.EngagementStats, error)
}

// Historical scores candidates from their campaign's recent delivery. Rates
// are smoothed towards the default CTR and CVR so campaigns with little
// traffic stay close to the prior. Totals are cached per campaign.
type Historical struct {
	stats      StatsReader
	window     time.Duration
	defaultCTR float64
	defaultCVR float64
	cache      *cache.Cache
	now        func() time.Time
}

// NewHistorical creates the backend. ttl bounds how stale cached totals may
// get.
func NewHistorical(stats StatsReader, window, ttl time.Duration, defaultCTR, defaultCVR float64) *Historical {
	return &Historical{
		stats:      stats,
		window:     window,
		defaultCTR: defaultCTR,
		defaultCVR: defaultCVR,
		cache:      cache.New(ttl, 2*ttl),
		now:        time.Now,
	}
}

// Predict implements port.Predictor.
func (h *Historical) Predict(ctx context.Context, candidates []domain.Candidate, _ domain.UserContext) ([]domain.Prediction, error) {
	totals, err := h.totals(ctx, candidates)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Prediction, len(candidates))
	for i, c := range candidates {
		s := totals[c.CampaignID]
		out[i] = domain.Prediction{
			PCTR: smooth(s.Clicks, s.Impressions, h.defaultCTR),
			PCVR: smooth(s.Conversions, s.Clicks, h.defaultCVR),
		}
	}
	return out, nil
}

// totals serves cached campaigns from memory and loads the rest in one
// query. Campaigns without stats are cached as zero totals.
func (h *Historical) totals(ctx context.Context, candidates []domain.Candidate) (map[int64]domain.EngagementStats, error) {
	out := make(map[int64]domain.EngagementStats, len(candidates))
	var missing []int64
	for _, c := range candidates {
		if _, seen := out[c.CampaignID]; seen {
			continue
		}
		if v, ok := h.cache.Get(cacheKey(c.CampaignID)); ok {
			out[c.CampaignID] = v.(domain.EngagementStats)
			continue
		}
		out[c.CampaignID] = domain.EngagementStats{}
		missing = append(missing, c.CampaignID)
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := h.stats.CampaignStats(ctx, missing, h.now().Add(-h.window))
	if err != nil {
		return nil, fmt.Errorf("load campaign stats: %w", err)
	}
	for _, id := range missing {
		s := loaded[id]
		out[id] = s
		h.cache.Set(cacheKey(id), s, cache.DefaultExpiration)
	}
	return out, nil
}

func cacheKey(campaignID int64) string {
	return strconv.FormatInt(campaignID, 10)
}

// smooth returns (events + prior*w) / (trials + w), which stays inside
// (0,1) for a prior in (0,1) and events <= trials.
func smooth(events, trials int64, prior float64) float64 {
	if events > trials {
		events = trials
	}
	return (float64(events) + prior*priorWeight) / (float64(trials) + priorWeight)
}

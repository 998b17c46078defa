package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-decision/internal/core/domain"
)

// StatsRepository reads delivery aggregates from hourly_stats.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository returns a new repository instance.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// CampaignStats sums impressions, clicks and conversions per campaign over
// the hours starting at or after since. Campaigns without rows are absent
// from the result.
func (r *StatsRepository) CampaignStats(ctx context.Context, campaignIDs []int64, since time.Time) (map[int64]domain.EngagementStats, error) {
	if len(campaignIDs) == 0 {
		return map[int64]domain.EngagementStats{}, nil
	}
	rows, err := r.pool.Query(ctx, `
        SELECT campaign_id, COALESCE(sum(impressions), 0), COALESCE(sum(clicks), 0), COALESCE(sum(conversions), 0)
        FROM hourly_stats
        WHERE campaign_id = ANY($1) AND stat_hour >= $2
        GROUP BY campaign_id`, campaignIDs, since)
	if err != nil {
		return nil, err
	}

	type row struct {
		campaignID int64
		stats      domain.EngagementStats
	}
	collected, err := pgx.CollectRows(rows, func(cr pgx.CollectableRow) (row, error) {
		var s row
		err := cr.Scan(&s.campaignID, &s.stats.Impressions, &s.stats.Clicks, &s.stats.Conversions)
		return s, err
	})
	if err != nil {
		return nil, err
	}

	out := make(map[int64]domain.EngagementStats, len(collected))
	for _, s := range collected {
		out[s.campaignID] = s.stats
	}
	return out, nil
}

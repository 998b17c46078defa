package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"mesa-decision/internal/core/port"
)

// Tracker writes the counters CounterStore reads. It is called after an
// impression or a charge is confirmed, outside the decision path.
type Tracker struct {
	client goredis.Cmdable
	window time.Duration
}

// NewTracker creates a tracker whose impression counters expire window
// after the latest increment.
func NewTracker(client goredis.Cmdable, window time.Duration) *Tracker {
	return &Tracker{client: client, window: window}
}

// RecordImpression increments the user's impression counter for campaignID.
func (t *Tracker) RecordImpression(ctx context.Context, userID string, campaignID int64) error {
	if userID == "" {
		return nil
	}
	key := port.FreqKey(userID, campaignID)

	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record impression: %w", err)
	}
	return nil
}

// RecordSpend adds amount to the campaign's spend for day. Budget hashes
// are kept for two days so late charges for yesterday still land.
func (t *Tracker) RecordSpend(ctx context.Context, campaignID int64, day time.Time, amount float64) error {
	key := port.BudgetKey(campaignID, day)

	pipe := t.client.TxPipeline()
	pipe.HIncrByFloat(ctx, key, port.BudgetSpentField, amount)
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record spend: %w", err)
	}
	return nil
}

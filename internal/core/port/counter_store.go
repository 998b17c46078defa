package port

import (
	"context"
	"fmt"
	"time"
)

// Counter key layout shared with the tracking component that writes the
// counters. Changing it breaks admission control silently.
const (
	BudgetKeyFormat  = "budget:%d:%s"
	BudgetSpentField = "spent_today"
	FreqKeyFormat    = "freq:%s:%d"
	BudgetDayLayout  = "2006-01-02"
)

// BudgetKey returns the hash key holding a campaign's spend for the UTC day
// containing day.
func BudgetKey(campaignID int64, day time.Time) string {
	return fmt.Sprintf(BudgetKeyFormat, campaignID, day.UTC().Format(BudgetDayLayout))
}

// FreqKey returns the counter key holding a user's impression count for a
// campaign.
func FreqKey(userID string, campaignID int64) string {
	return fmt.Sprintf(FreqKeyFormat, userID, campaignID)
}

// CounterReading is one value of a batched counter read. A missing key
// reads as zero; Err is set only when that particular key could not be read.
type CounterReading struct {
	Value float64
	Err   error
}

// CounterStore reads the shared spend and frequency counters. Each method
// performs one batched round trip and returns one reading per input id in
// input order. A non-nil error means the whole batch failed.
type CounterStore interface {
	// DailySpend reads spent_today of budget:{campaign}:{day} for each campaign.
	DailySpend(ctx context.Context, campaignIDs []int64, day time.Time) ([]CounterReading, error)
	// FrequencyCounts reads freq:{user}:{campaign} for each campaign.
	FrequencyCounts(ctx context.Context, userID string, campaignIDs []int64) ([]CounterReading, error)
}

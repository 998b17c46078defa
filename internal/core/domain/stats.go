package domain

// EngagementStats are a campaign's delivery totals over some window.
type EngagementStats struct {
	Impressions int64
	Clicks      int64
	Conversions int64
}

package domain

import "time"

// Status is the lifecycle flag shared by campaigns and creatives in the
// system of record.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
	StatusPaused
	StatusDeleted
	StatusPending
)

// BidType selects how a campaign pays and therefore how its bid is
// normalised into eCPM.
type BidType int

const (
	BidTypeCPM  BidType = iota + 1 // cost per thousand impressions
	BidTypeCPC                     // cost per click
	BidTypeCPA                     // cost per action
	BidTypeOCPM                    // optimised CPM, priced like CPA
)

func (b BidType) String() string {
	switch b {
	case BidTypeCPM:
		return "cpm"
	case BidTypeCPC:
		return "cpc"
	case BidTypeCPA:
		return "cpa"
	case BidTypeOCPM:
		return "ocpm"
	default:
		return "unknown"
	}
}

// Campaign represents an advertising campaign as loaded into the catalog.
// Money fields are in the advertiser currency. A zero DailyBudget or
// FreqCapDaily means "no limit".
type Campaign struct {
	ID            int64
	AdvertiserID  int64
	Name          string
	DailyBudget   float64
	TotalBudget   float64
	BidType       BidType
	BidAmount     float64
	FreqCapDaily  int64
	FreqCapHourly int64
	StartTime     *time.Time
	EndTime       *time.Time
	Status        Status
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Servable reports whether the campaign may be held in a catalog snapshot
// built at the given time: it must be active and its window must not have
// closed yet. A start time in the future is allowed because the window may
// open before the next refresh.
func (c Campaign) Servable(at time.Time) bool {
	if c.Status != StatusActive || !c.IsActive {
		return false
	}
	return c.EndTime == nil || !c.EndTime.Before(at)
}

// InSchedule reports whether at falls inside the [StartTime, EndTime] window.
// Missing bounds are open.
func (c Campaign) InSchedule(at time.Time) bool {
	if c.StartTime != nil && c.StartTime.After(at) {
		return false
	}
	if c.EndTime != nil && c.EndTime.Before(at) {
		return false
	}
	return true
}

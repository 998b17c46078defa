package pipeline

import (
	"io"
	"log/slog"
	"time"

	"mesa-decision/internal/core/catalog"
	"mesa-decision/internal/core/domain"
)

var requestTime = time.Date(2026, 6, 1, 15, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticSnapshot struct {
	snap *catalog.Snapshot
}

func (s staticSnapshot) Snapshot() *catalog.Snapshot { return s.snap }

func campaign(id, advertiser int64, bidType domain.BidType, bid float64) domain.Campaign {
	return domain.Campaign{
		ID:           id,
		AdvertiserID: advertiser,
		BidType:      bidType,
		BidAmount:    bid,
		Status:       domain.StatusActive,
		IsActive:     true,
	}
}

func activeCreative(id, campaignID int64, slots ...string) domain.Creative {
	return domain.Creative{
		ID:         id,
		CampaignID: campaignID,
		Title:      "creative",
		LandingURL: "https://example.com/landing",
		Type:       domain.CreativeTypeBanner,
		Width:      300,
		Height:     250,
		Status:     domain.StatusActive,
		SlotIDs:    slots,
	}
}

func ids(in []domain.Candidate) []int64 {
	out := make([]int64, 0, len(in))
	for _, c := range in {
		out = append(out, c.CreativeID)
	}
	return out
}

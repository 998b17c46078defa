package pipeline

import (
	"mesa-decision/internal/core/catalog"
	"mesa-decision/internal/core/domain"
)

// SnapshotSource hands out the current catalog snapshot.
type SnapshotSource interface {
	Snapshot() *catalog.Snapshot
}

// RuleMatcher evaluates a campaign's targeting rules.
type RuleMatcher interface {
	Match(rules []domain.TargetingRule, user domain.UserContext) bool
}

// Retrieval produces the initial candidate set from the catalog: every
// creative eligible for the slot whose campaign is in schedule and whose
// targeting accepts the user.
type Retrieval struct {
	catalog SnapshotSource
	matcher RuleMatcher
}

// NewRetrieval creates the retrieval stage.
func NewRetrieval(src SnapshotSource, matcher RuleMatcher) *Retrieval {
	return &Retrieval{catalog: src, matcher: matcher}
}

func (r *Retrieval) Name() string { return StageRetrieval }

// Process ignores its input batch. It fails only when no catalog snapshot
// has been loaded yet; zero matches is an empty result.
func (r *Retrieval) Process(req Request, _ []domain.Candidate) ([]domain.Candidate, error) {
	snap := r.catalog.Snapshot()
	if snap == nil {
		return nil, domain.ErrCatalogNotReady
	}

	creatives := snap.CreativesBySlot(req.SlotID)
	out := make([]domain.Candidate, 0, len(creatives))
	for _, cr := range creatives {
		campaign, ok := snap.Campaign(cr.CampaignID)
		if !ok {
			continue
		}
		if !campaign.InSchedule(req.Now) {
			continue
		}
		if !r.matcher.Match(snap.Rules(campaign.ID), req.User) {
			continue
		}
		out = append(out, newCandidate(campaign, cr))
	}
	return out, nil
}

func newCandidate(campaign domain.Campaign, cr domain.Creative) domain.Candidate {
	return domain.Candidate{
		CampaignID:   campaign.ID,
		CreativeID:   cr.ID,
		AdvertiserID: campaign.AdvertiserID,
		Bid:          campaign.BidAmount,
		BidType:      campaign.BidType,
		CreativeType: cr.Type,
		Title:        cr.Title,
		Description:  cr.Description,
		ImageURL:     cr.ImageURL,
		VideoURL:     cr.VideoURL,
		LandingURL:   cr.LandingURL,
		Width:        cr.Width,
		Height:       cr.Height,
		Duration:     cr.Duration,
		DailyBudget:  campaign.DailyBudget,
		FreqCapDaily: campaign.FreqCapDaily,
	}
}

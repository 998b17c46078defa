package catalog

import (
	"slices"
	"time"

	"mesa-decision/internal/core/domain"
)

// Snapshot is an immutable, read-optimised view of the catalog built by one
// refresh. Slices returned by its accessors are shared between readers and
// must not be modified.
type Snapshot struct {
	campaigns map[int64]domain.Campaign
	creatives map[int64][]domain.Creative
	rules     map[int64][]domain.TargetingRule

	all       []domain.Creative
	unslotted []domain.Creative
	bySlot    map[string][]domain.Creative

	ruleCount int
	builtAt   time.Time
}

// Build indexes a raw catalog into a snapshot. Campaigns that are not
// servable at the given time are left out, and creatives or rules whose
// campaign is absent are dropped.
func Build(cat domain.Catalog, at time.Time) *Snapshot {
	s := &Snapshot{
		campaigns: make(map[int64]domain.Campaign, len(cat.Campaigns)),
		creatives: make(map[int64][]domain.Creative),
		rules:     make(map[int64][]domain.TargetingRule),
		bySlot:    make(map[string][]domain.Creative),
		builtAt:   at,
	}

	for _, c := range cat.Campaigns {
		if c.Servable(at) {
			s.campaigns[c.ID] = c
		}
	}

	for _, r := range cat.Rules {
		if _, ok := s.campaigns[r.CampaignID]; !ok {
			continue
		}
		s.rules[r.CampaignID] = append(s.rules[r.CampaignID], r)
		s.ruleCount++
	}

	live := make([]domain.Creative, 0, len(cat.Creatives))
	for _, cr := range cat.Creatives {
		if cr.Status != domain.StatusActive {
			continue
		}
		if _, ok := s.campaigns[cr.CampaignID]; !ok {
			continue
		}
		live = append(live, cr)
		for _, slot := range cr.SlotIDs {
			if _, ok := s.bySlot[slot]; !ok {
				s.bySlot[slot] = nil
			}
		}
	}

	// Per-slot lists keep catalog order and include creatives that are
	// not bound to any slot.
	for _, cr := range live {
		s.all = append(s.all, cr)
		s.creatives[cr.CampaignID] = append(s.creatives[cr.CampaignID], cr)
		if len(cr.SlotIDs) == 0 {
			s.unslotted = append(s.unslotted, cr)
			for slot := range s.bySlot {
				s.bySlot[slot] = append(s.bySlot[slot], cr)
			}
			continue
		}
		for i, slot := range cr.SlotIDs {
			if slices.Contains(cr.SlotIDs[:i], slot) {
				continue
			}
			s.bySlot[slot] = append(s.bySlot[slot], cr)
		}
	}
	return s
}

// Campaign returns the campaign with the given id.
func (s *Snapshot) Campaign(id int64) (domain.Campaign, bool) {
	c, ok := s.campaigns[id]
	return c, ok
}

// Rules returns the targeting rules of a campaign.
func (s *Snapshot) Rules(campaignID int64) []domain.TargetingRule {
	return s.rules[campaignID]
}

// CreativesForCampaign returns the creatives of a campaign.
func (s *Snapshot) CreativesForCampaign(campaignID int64) []domain.Creative {
	return s.creatives[campaignID]
}

// CreativesBySlot returns the creatives eligible for slotID. An empty slot
// id selects every creative; a slot no creative is bound to selects the
// creatives that are not bound to any slot.
func (s *Snapshot) CreativesBySlot(slotID string) []domain.Creative {
	if slotID == "" {
		return s.all
	}
	if list, ok := s.bySlot[slotID]; ok {
		return list
	}
	return s.unslotted
}

// BuiltAt is the refresh time the snapshot was validated against.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

func (s *Snapshot) CampaignCount() int { return len(s.campaigns) }
func (s *Snapshot) CreativeCount() int { return len(s.all) }
func (s *Snapshot) RuleCount() int     { return s.ruleCount }

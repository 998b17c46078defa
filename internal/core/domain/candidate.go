package domain

import "errors"

var (
	// ErrCatalogNotReady means no catalog snapshot has ever been loaded, so
	// no decision can be made.
	ErrCatalogNotReady = errors.New("catalog not ready")
	// ErrRankingInvariant means a candidate ended up with a score that
	// cannot be ordered.
	ErrRankingInvariant = errors.New("ranking invariant violated")
)

// Candidate is one (campaign, creative) pairing eligible for a single ad
// request. Retrieval fills the identity, bid and creative fields together
// with the campaign limits the admission filter needs; later stages attach
// PCTR/PCVR and ECPM/Score.
type Candidate struct {
	CampaignID   int64        `json:"campaign_id"`
	CreativeID   int64        `json:"creative_id"`
	AdvertiserID int64        `json:"advertiser_id"`
	Bid          float64      `json:"bid"`
	BidType      BidType      `json:"bid_type"`
	CreativeType CreativeType `json:"creative_type"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	VideoURL     string       `json:"video_url,omitempty"`
	LandingURL   string       `json:"landing_url"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Duration     int          `json:"duration,omitempty"`

	DailyBudget  float64 `json:"-"`
	FreqCapDaily int64   `json:"-"`

	PCTR  float64 `json:"pctr"`
	PCVR  float64 `json:"pcvr"`
	ECPM  float64 `json:"ecpm"`
	Score float64 `json:"score"`
}

// Prediction is the pair of engagement probabilities a scoring backend
// returns for one candidate.
type Prediction struct {
	PCTR float64 `json:"pctr"`
	PCVR float64 `json:"pcvr"`
}

// Catalog is the raw bulk result of one load from the system of record.
type Catalog struct {
	Campaigns []Campaign
	Creatives []Creative
	Rules     []TargetingRule
}

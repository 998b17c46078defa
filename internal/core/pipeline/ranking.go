package pipeline

import (
	"fmt"
	"math"
	"sort"

	"mesa-decision/internal/core/domain"
)

// Ranking normalises every bid into eCPM and orders candidates by it,
// highest first. Equal scores keep their input order.
type Ranking struct{}

// NewRanking creates the ranking stage.
func NewRanking() Ranking {
	return Ranking{}
}

func (Ranking) Name() string { return StageRanking }

// Process scores candidates in place and sorts the slice it returns.
func (Ranking) Process(_ Request, in []domain.Candidate) ([]domain.Candidate, error) {
	for i := range in {
		ecpm := ECPM(in[i])
		if math.IsNaN(ecpm) || math.IsInf(ecpm, 0) {
			return nil, fmt.Errorf("%w: campaign %d creative %d has ecpm %v",
				domain.ErrRankingInvariant, in[i].CampaignID, in[i].CreativeID, ecpm)
		}
		in[i].ECPM = ecpm
		in[i].Score = ecpm
	}
	sort.SliceStable(in, func(a, b int) bool { return in[a].Score > in[b].Score })
	return in, nil
}

// ECPM is the expected revenue per thousand impressions of a candidate.
// CPA and OCPM share one formula. Unknown bid types are worth nothing.
func ECPM(c domain.Candidate) float64 {
	switch c.BidType {
	case domain.BidTypeCPM:
		return c.Bid
	case domain.BidTypeCPC:
		return c.Bid * c.PCTR * 1000
	case domain.BidTypeCPA, domain.BidTypeOCPM:
		return c.Bid * c.PCTR * c.PCVR * 1000
	default:
		return 0
	}
}

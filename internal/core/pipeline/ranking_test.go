package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-decision/internal/core/domain"
)

func TestECPMByBidType(t *testing.T) {
	tests := []struct {
		name string
		c    domain.Candidate
		want float64
	}{
		{"cpm ignores predictions", domain.Candidate{BidType: domain.BidTypeCPM, Bid: 3.5, PCTR: 0.9, PCVR: 0.9}, 3.5},
		{"cpc", domain.Candidate{BidType: domain.BidTypeCPC, Bid: 2, PCTR: 0.015}, 30},
		{"cpa", domain.Candidate{BidType: domain.BidTypeCPA, Bid: 50, PCTR: 0.02, PCVR: 0.1}, 100},
		{"ocpm priced like cpa", domain.Candidate{BidType: domain.BidTypeOCPM, Bid: 50, PCTR: 0.02, PCVR: 0.1}, 100},
		{"unknown", domain.Candidate{BidType: 0, Bid: 50, PCTR: 0.5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ECPM(tt.c), 1e-9)
		})
	}
}

func TestRankingSortsByScore(t *testing.T) {
	in := []domain.Candidate{
		{CreativeID: 1, BidType: domain.BidTypeCPM, Bid: 1},
		{CreativeID: 2, BidType: domain.BidTypeCPC, Bid: 1, PCTR: 0.01}, // 10
		{CreativeID: 3, BidType: domain.BidTypeCPM, Bid: 5},
		{CreativeID: 4, BidType: domain.BidTypeCPM, Bid: 5},
	}

	out, err := NewRanking().Process(Request{}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(out), "ties keep input order")
	for _, c := range out {
		assert.Equal(t, c.ECPM, c.Score)
	}
	assert.InDelta(t, 10.0, out[0].ECPM, 1e-9)
}

func TestRankingRejectsNonFiniteScores(t *testing.T) {
	in := []domain.Candidate{{CreativeID: 1, BidType: domain.BidTypeCPM, Bid: math.Inf(1)}}

	_, err := NewRanking().Process(Request{}, in)
	assert.ErrorIs(t, err, domain.ErrRankingInvariant)
}

func TestRankingEmpty(t *testing.T) {
	out, err := NewRanking().Process(Request{}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

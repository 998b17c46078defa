package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesa-decision/internal/core/domain"
	"mesa-decision/internal/core/port"
	"mesa-decision/internal/core/port/mocks"
)

func limitedCandidate(creativeID, campaignID int64, budget float64, freqCap int64) domain.Candidate {
	return domain.Candidate{
		CreativeID:   creativeID,
		CampaignID:   campaignID,
		AdvertiserID: campaignID,
		BidType:      domain.BidTypeCPM,
		Bid:          1,
		DailyBudget:  budget,
		FreqCapDaily: freqCap,
	}
}

func newTestFilter(t *testing.T) (*Filter, *mocks.MockCounterStore) {
	store := mocks.NewMockCounterStore(t)
	return NewFilter(store, time.Second, discardLogger(), nil), store
}

func TestFilterEmptyInput(t *testing.T) {
	f, _ := newTestFilter(t)

	out, err := f.Process(context.Background(), Request{Now: requestTime}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFilterWithoutLimitsSkipsStore(t *testing.T) {
	f, _ := newTestFilter(t)
	in := []domain.Candidate{limitedCandidate(1, 1, 0, 0), limitedCandidate(2, 2, 0, 0)}

	out, err := f.Process(context.Background(), Request{User: domain.UserContext{UserID: "u1"}, Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(out))
}

func TestFilterBudgetExhausted(t *testing.T) {
	f, store := newTestFilter(t)
	in := []domain.Candidate{
		limitedCandidate(1, 1, 100, 0),
		limitedCandidate(2, 2, 0, 0),
		limitedCandidate(3, 3, 100, 0),
		limitedCandidate(4, 4, 100, 0),
	}
	store.EXPECT().DailySpend(mock.Anything, []int64{1, 3, 4}, requestTime).
		Return([]port.CounterReading{{Value: 100}, {Value: 99.5}, {Value: 250}}, nil).Once()

	out, err := f.Process(context.Background(), Request{Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(out))
}

func TestFilterZeroBudgetNeverExhausted(t *testing.T) {
	f, _ := newTestFilter(t)
	in := []domain.Candidate{limitedCandidate(1, 1, 0, 0)}

	out, err := f.Process(context.Background(), Request{Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(out))
}

func TestFilterFrequencyCap(t *testing.T) {
	f, store := newTestFilter(t)
	in := []domain.Candidate{
		limitedCandidate(1, 1, 0, 3),
		limitedCandidate(2, 2, 0, 3),
		limitedCandidate(3, 3, 0, 0),
	}
	store.EXPECT().FrequencyCounts(mock.Anything, "u1", []int64{1, 2}).
		Return([]port.CounterReading{{Value: 2}, {Value: 3}}, nil).Once()

	out, err := f.Process(context.Background(), Request{User: domain.UserContext{UserID: "u1"}, Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(out))
}

func TestFilterAnonymousUserNeverCapped(t *testing.T) {
	f, _ := newTestFilter(t)
	in := []domain.Candidate{limitedCandidate(1, 1, 0, 1)}

	out, err := f.Process(context.Background(), Request{Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(out))
}

func TestFilterBatchFailureFailsOpen(t *testing.T) {
	f, store := newTestFilter(t)
	in := []domain.Candidate{limitedCandidate(1, 1, 10, 1), limitedCandidate(2, 2, 10, 1)}
	store.EXPECT().DailySpend(mock.Anything, []int64{1, 2}, requestTime).
		Return(nil, errors.New("connection refused")).Once()
	store.EXPECT().FrequencyCounts(mock.Anything, "u1", []int64{1, 2}).
		Return([]port.CounterReading{{Value: 0}}, nil).Once()

	out, err := f.Process(context.Background(), Request{User: domain.UserContext{UserID: "u1"}, Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(out), "short replies are treated like failed batches")
}

func TestFilterKeyFailureAdmitsOnlyThatCandidate(t *testing.T) {
	f, store := newTestFilter(t)
	in := []domain.Candidate{limitedCandidate(1, 1, 10, 0), limitedCandidate(2, 2, 10, 0)}
	store.EXPECT().DailySpend(mock.Anything, []int64{1, 2}, requestTime).
		Return([]port.CounterReading{{Err: errors.New("WRONGTYPE")}, {Value: 10}}, nil).Once()

	out, err := f.Process(context.Background(), Request{Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(out))
}

func TestFilterTimeoutFailsOpen(t *testing.T) {
	store := mocks.NewMockCounterStore(t)
	f := NewFilter(store, 10*time.Millisecond, discardLogger(), nil)
	in := []domain.Candidate{limitedCandidate(1, 1, 10, 0)}
	store.EXPECT().DailySpend(mock.Anything, []int64{1}, requestTime).
		RunAndReturn(func(ctx context.Context, _ []int64, _ time.Time) ([]port.CounterReading, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

	out, err := f.Process(context.Background(), Request{Now: requestTime}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(out))
}

func TestFilterAbandonedRequest(t *testing.T) {
	f, store := newTestFilter(t)
	in := []domain.Candidate{limitedCandidate(1, 1, 10, 0)}
	ctx, cancel := context.WithCancel(context.Background())
	store.EXPECT().DailySpend(mock.Anything, []int64{1}, requestTime).
		RunAndReturn(func(ctx context.Context, _ []int64, _ time.Time) ([]port.CounterReading, error) {
			cancel()
			return nil, ctx.Err()
		}).Once()

	_, err := f.Process(ctx, Request{Now: requestTime}, in)
	assert.ErrorIs(t, err, context.Canceled)
}

package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesa-decision/internal/core/domain"
	"mesa-decision/internal/core/port/mocks"
)

var refreshAt = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCache(t *testing.T) (*Cache, *mocks.MockCatalogSource) {
	src := mocks.NewMockCatalogSource(t)
	c := NewCache(src, time.Second, discardLogger(), nil)
	c.now = func() time.Time { return refreshAt }
	return c, src
}

func activeCampaign(id, advertiser int64) domain.Campaign {
	return domain.Campaign{ID: id, AdvertiserID: advertiser, Status: domain.StatusActive, IsActive: true, BidType: domain.BidTypeCPM, BidAmount: 1}
}

func creative(id, campaign int64, slots ...string) domain.Creative {
	return domain.Creative{ID: id, CampaignID: campaign, Status: domain.StatusActive, SlotIDs: slots}
}

func sampleCatalog() domain.Catalog {
	ended := refreshAt.Add(-time.Minute)
	paused := activeCampaign(3, 1)
	paused.Status = domain.StatusPaused
	closed := activeCampaign(4, 1)
	closed.EndTime = &ended
	inactiveCreative := creative(14, 1)
	inactiveCreative.Status = domain.StatusPaused

	return domain.Catalog{
		Campaigns: []domain.Campaign{activeCampaign(1, 10), activeCampaign(2, 20), paused, closed},
		Creatives: []domain.Creative{
			creative(11, 1),
			creative(12, 2, "top"),
			creative(13, 3),
			inactiveCreative,
			creative(15, 99),
			creative(16, 4),
			creative(17, 2, "side", "top", "side"),
		},
		Rules: []domain.TargetingRule{
			{ID: 1, CampaignID: 1, Include: true, Condition: domain.GeoCondition{Countries: []string{"US"}}},
			{ID: 2, CampaignID: 3, Include: true, Condition: domain.GeoCondition{Countries: []string{"US"}}},
			{ID: 3, CampaignID: 99, Include: true, Condition: domain.GeoCondition{Countries: []string{"US"}}},
		},
	}
}

func creativeIDs(list []domain.Creative) []int64 {
	ids := make([]int64, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestCacheNotReadyBeforeRefresh(t *testing.T) {
	c, _ := newTestCache(t)

	assert.False(t, c.Ready())
	assert.Nil(t, c.Snapshot())
	_, ok := c.GetCampaign(1)
	assert.False(t, ok)
	assert.Empty(t, c.GetCreativesBySlot(""))
	assert.Empty(t, c.GetRulesForCampaign(1))
	assert.Empty(t, c.GetCreativesForCampaign(1))
}

func TestCacheRefreshBuildsConsistentSnapshot(t *testing.T) {
	c, src := newTestCache(t)
	src.EXPECT().LoadCatalog(mock.Anything).Return(sampleCatalog(), nil).Once()

	require.NoError(t, c.Refresh(context.Background()))
	require.True(t, c.Ready())

	_, ok := c.GetCampaign(1)
	assert.True(t, ok)
	_, ok = c.GetCampaign(3)
	assert.False(t, ok, "paused campaigns are not cached")
	_, ok = c.GetCampaign(4)
	assert.False(t, ok, "campaigns whose window closed are not cached")

	assert.Equal(t, []int64{11, 12, 17}, creativeIDs(c.GetCreativesBySlot("")))
	assert.Equal(t, []int64{12, 17}, creativeIDs(c.GetCreativesForCampaign(2)))
	assert.Len(t, c.GetRulesForCampaign(1), 1)
	assert.Empty(t, c.GetRulesForCampaign(3))
	assert.Empty(t, c.GetRulesForCampaign(99))

	snap := c.Snapshot()
	assert.Equal(t, 2, snap.CampaignCount())
	assert.Equal(t, 3, snap.CreativeCount())
	assert.Equal(t, 1, snap.RuleCount())
	assert.Equal(t, refreshAt, snap.BuiltAt())
}

func TestCacheSlotIndex(t *testing.T) {
	c, src := newTestCache(t)
	src.EXPECT().LoadCatalog(mock.Anything).Return(sampleCatalog(), nil).Once()
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, []int64{11, 12, 17}, creativeIDs(c.GetCreativesBySlot("top")))
	assert.Equal(t, []int64{11, 17}, creativeIDs(c.GetCreativesBySlot("side")))
	assert.Equal(t, []int64{11}, creativeIDs(c.GetCreativesBySlot("unknown")))
}

func TestCacheRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	c, src := newTestCache(t)
	src.EXPECT().LoadCatalog(mock.Anything).Return(sampleCatalog(), nil).Once()
	src.EXPECT().LoadCatalog(mock.Anything).Return(domain.Catalog{}, errors.New("connection refused")).Once()

	require.NoError(t, c.Refresh(context.Background()))
	before := c.Snapshot()
	campaign, _ := c.GetCampaign(1)
	creatives := c.GetCreativesBySlot("top")

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	assert.Same(t, before, c.Snapshot())
	after, ok := c.GetCampaign(1)
	assert.True(t, ok)
	assert.Equal(t, campaign, after)
	assert.Equal(t, creatives, c.GetCreativesBySlot("top"))
}

func TestCacheFirstRefreshFailureStaysEmpty(t *testing.T) {
	c, src := newTestCache(t)
	loadErr := errors.New("timeout")
	src.EXPECT().LoadCatalog(mock.Anything).Return(domain.Catalog{}, loadErr).Once()

	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, loadErr)
	assert.False(t, c.Ready())
}

func TestCacheRefreshAppliesTimeout(t *testing.T) {
	c, src := newTestCache(t)
	src.EXPECT().LoadCatalog(mock.Anything).RunAndReturn(func(ctx context.Context) (domain.Catalog, error) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
		return domain.Catalog{}, nil
	}).Once()

	require.NoError(t, c.Refresh(context.Background()))
	assert.True(t, c.Ready())
}

// Generation n has n campaigns with one creative each, so a reader that
// mixes two generations would see mismatched counts.
func TestCacheReadersSeeWholeSnapshots(t *testing.T) {
	c, src := newTestCache(t)
	var gen atomic.Int64
	src.EXPECT().LoadCatalog(mock.Anything).RunAndReturn(func(context.Context) (domain.Catalog, error) {
		n := gen.Add(1)
		var cat domain.Catalog
		for i := int64(1); i <= n; i++ {
			cat.Campaigns = append(cat.Campaigns, activeCampaign(i, i))
			cat.Creatives = append(cat.Creatives, creative(100+i, i))
		}
		return cat, nil
	})
	require.NoError(t, c.Refresh(context.Background()))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := c.Snapshot()
				creatives := snap.CreativesBySlot("")
				if !assert.Equal(t, snap.CampaignCount(), len(creatives)) {
					return
				}
				for _, cr := range creatives {
					_, ok := snap.Campaign(cr.CampaignID)
					if !assert.True(t, ok) {
						return
					}
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		require.NoError(t, c.Refresh(context.Background()))
	}
	close(stop)
	wg.Wait()
	assert.Equal(t, 51, c.Snapshot().CampaignCount())
}

package predictor

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-decision/internal/core/domain"
)

func newRemote(t *testing.T, h http.HandlerFunc) *Remote {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRemote(RemoteConfig{URL: srv.URL, Timeout: time.Second, Failures: 2, Cooldown: time.Minute},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRemotePredict(t *testing.T) {
	var got remoteRequest
	r := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"pctr":[0.1,0.2],"pcvr":[0.01,0.02]}`))
	})

	preds, err := r.Predict(context.Background(),
		[]domain.Candidate{{CampaignID: 1, BidType: domain.BidTypeCPC}, {CampaignID: 2, BidType: domain.BidTypeCPA}},
		domain.UserContext{UserID: "U1", Country: "US"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Prediction{{PCTR: 0.1, PCVR: 0.01}, {PCTR: 0.2, PCVR: 0.02}}, preds)

	require.Len(t, got.Candidates, 2)
	assert.Equal(t, "cpc", got.Candidates[0].BidType)
	assert.Equal(t, "US", got.Context.Country)
}

func TestRemoteRejectsShortResponse(t *testing.T) {
	r := newRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"pctr":[0.1],"pcvr":[0.01]}`))
	})

	_, err := r.Predict(context.Background(), []domain.Candidate{{CampaignID: 1}, {CampaignID: 2}}, domain.UserContext{})
	assert.Error(t, err)
}

func TestRemoteBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	r := newRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 2; i++ {
		_, err := r.Predict(context.Background(), []domain.Candidate{{CampaignID: 1}}, domain.UserContext{})
		assert.ErrorContains(t, err, "500")
	}
	_, err := r.Predict(context.Background(), []domain.Candidate{{CampaignID: 1}}, domain.UserContext{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), hits.Load())
}

package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesa-decision/internal/core/domain"
	"mesa-decision/internal/core/port"
	"mesa-decision/internal/core/port/mocks"
)

type readyFlag bool

func (r readyFlag) Ready() bool { return bool(r) }

type recordedSpend struct {
	campaignID int64
	day        time.Time
	amount     float64
}

type fakeTracker struct {
	impressions []string
	spends      []recordedSpend
	err         error
}

func (f *fakeTracker) RecordImpression(_ context.Context, userID string, campaignID int64) error {
	f.impressions = append(f.impressions, fmt.Sprintf("%s/%d", userID, campaignID))
	return f.err
}

func (f *fakeTracker) RecordSpend(_ context.Context, campaignID int64, day time.Time, amount float64) error {
	f.spends = append(f.spends, recordedSpend{campaignID, day, amount})
	return f.err
}

func newTestHandler(t *testing.T, svc port.AdUseCase, ready bool, tracker Tracker) *Handler {
	t.Helper()
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) })
	return NewHandler(svc, readyFlag(ready), tracker, metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestAdRequest(t *testing.T) {
	svc := mocks.NewMockAdUseCase(t)
	svc.EXPECT().
		Recommend(mock.Anything, domain.UserContext{UserID: "U1", Country: "US"}, "home_top", 3).
		Return(&port.Decision{
			RequestID:  "req-1",
			Candidates: []domain.Candidate{{CampaignID: 1, CreativeID: 11, ECPM: 30, Score: 30}},
		}, nil).Once()
	h := newTestHandler(t, svc, true, &fakeTracker{})

	rec := serve(h, http.MethodPost, "/api/v1/ad/request", `{"user_id":"U1","country":"US","slot_id":"home_top","limit":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got port.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "req-1", got.RequestID)
	require.Len(t, got.Candidates, 1)
	assert.Equal(t, int64(11), got.Candidates[0].CreativeID)
}

func TestAdRequestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		decision *port.Decision
		err      error
		want     int
	}{
		{"empty", &port.Decision{RequestID: "req-2"}, nil, http.StatusNoContent},
		{"not ready", &port.Decision{}, fmt.Errorf("retrieval: %w", domain.ErrCatalogNotReady), http.StatusServiceUnavailable},
		{"pipeline failure", &port.Decision{}, errors.New("ranking: boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAdUseCase(t)
			svc.EXPECT().Recommend(mock.Anything, mock.Anything, "", 0).Return(tt.decision, tt.err).Once()
			h := newTestHandler(t, svc, true, &fakeTracker{})

			rec := serve(h, http.MethodPost, "/api/v1/ad/request", `{}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdRequestInvalidJSON(t *testing.T) {
	h := newTestHandler(t, mocks.NewMockAdUseCase(t), true, &fakeTracker{})

	rec := serve(h, http.MethodPost, "/api/v1/ad/request", `{"user_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImpression(t *testing.T) {
	tracker := &fakeTracker{}
	h := newTestHandler(t, mocks.NewMockAdUseCase(t), true, tracker)
	day := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return day }

	rec := serve(h, http.MethodPost, "/api/v1/ad/impression", `{"user_id":"U1","campaign_id":7,"cost":0.25}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"U1/7"}, tracker.impressions)
	assert.Equal(t, []recordedSpend{{7, day, 0.25}}, tracker.spends)

	rec = serve(h, http.MethodPost, "/api/v1/ad/impression", `{"user_id":"U2","campaign_id":7}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, tracker.spends, 1)
}

func TestImpressionErrors(t *testing.T) {
	h := newTestHandler(t, mocks.NewMockAdUseCase(t), true, &fakeTracker{})
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/api/v1/ad/impression", `{"campaign_id":0}`).Code)

	h = newTestHandler(t, mocks.NewMockAdUseCase(t), true, &fakeTracker{err: errors.New("redis down")})
	assert.Equal(t, http.StatusInternalServerError, serve(h, http.MethodPost, "/api/v1/ad/impression", `{"campaign_id":3}`).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestHandler(t, mocks.NewMockAdUseCase(t), false, &fakeTracker{})
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, http.MethodGet, "/healthz", "").Code)

	h = newTestHandler(t, mocks.NewMockAdUseCase(t), true, &fakeTracker{})
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/healthz", "").Code)

	rec := serve(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

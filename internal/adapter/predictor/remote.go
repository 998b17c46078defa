package predictor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"mesa-decision/internal/core/domain"
)

// RemoteConfig configures the remote inference backend.
type RemoteConfig struct {
	URL string
	// Timeout bounds a single HTTP call. The prediction stage applies its
	// own, usually tighter, deadline on top.
	Timeout time.Duration
	// Failures consecutive errors open the breaker for Cooldown.
	Failures uint32
	Cooldown time.Duration
}

// Remote asks an external model server for predictions. Calls go through a
// circuit breaker so an unhealthy server is skipped entirely until the
// cooldown elapses.
type Remote struct {
	url    string
	client *http.Client
	cb     *gobreaker.CircuitBreaker[[]domain.Prediction]
}

type remoteCandidate struct {
	CampaignID   int64               `json:"campaign_id"`
	CreativeID   int64               `json:"creative_id"`
	AdvertiserID int64               `json:"advertiser_id"`
	Bid          float64             `json:"bid"`
	BidType      string              `json:"bid_type"`
	CreativeType domain.CreativeType `json:"creative_type"`
}

type remoteRequest struct {
	Candidates []remoteCandidate  `json:"candidates"`
	Context    domain.UserContext `json:"context"`
}

type remoteResponse struct {
	PCTR []float64 `json:"pctr"`
	PCVR []float64 `json:"pcvr"`
}

// NewRemote creates the backend.
func NewRemote(cfg RemoteConfig, logger *slog.Logger) *Remote {
	failures := cfg.Failures
	if failures == 0 {
		failures = 5
	}
	cb := gobreaker.NewCircuitBreaker[[]domain.Prediction](gobreaker.Settings{
		Name:        "prediction-remote",
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("prediction breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return &Remote{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout},
		cb:     cb,
	}
}

// Predict implements port.Predictor.
func (r *Remote) Predict(ctx context.Context, candidates []domain.Candidate, user domain.UserContext) ([]domain.Prediction, error) {
	return r.cb.Execute(func() ([]domain.Prediction, error) {
		return r.call(ctx, candidates, user)
	})
}

func (r *Remote) call(ctx context.Context, candidates []domain.Candidate, user domain.UserContext) ([]domain.Prediction, error) {
	req := remoteRequest{Candidates: make([]remoteCandidate, len(candidates)), Context: user}
	for i, c := range candidates {
		req.Candidates[i] = remoteCandidate{
			CampaignID:   c.CampaignID,
			CreativeID:   c.CreativeID,
			AdvertiserID: c.AdvertiserID,
			Bid:          c.Bid,
			BidType:      c.BidType.String(),
			CreativeType: c.CreativeType,
		}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("prediction server returned %s", resp.Status)
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	if len(out.PCTR) != len(candidates) || len(out.PCVR) != len(candidates) {
		return nil, fmt.Errorf("prediction server returned %d/%d values for %d candidates", len(out.PCTR), len(out.PCVR), len(candidates))
	}

	preds := make([]domain.Prediction, len(candidates))
	for i := range preds {
		preds[i] = domain.Prediction{PCTR: out.PCTR[i], PCVR: out.PCVR[i]}
	}
	return preds, nil
}

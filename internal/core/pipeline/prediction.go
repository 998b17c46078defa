package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"mesa-decision/internal/core/domain"
	"mesa-decision/internal/core/port"
	"mesa-decision/internal/metrics"
)

// Heuristic is the default scoring strategy: every candidate gets the same
// configured probabilities. It is also the mandatory fallback of the
// prediction stage.
type Heuristic struct {
	CTR float64
	CVR float64
}

// NewHeuristic validates that both probabilities lie in (0,1).
func NewHeuristic(ctr, cvr float64) (Heuristic, error) {
	if !validProbability(ctr) || !validProbability(cvr) {
		return Heuristic{}, fmt.Errorf("heuristic probabilities must be in (0,1), got ctr=%v cvr=%v", ctr, cvr)
	}
	return Heuristic{CTR: ctr, CVR: cvr}, nil
}

// Predict implements port.Predictor.
func (h Heuristic) Predict(_ context.Context, candidates []domain.Candidate, _ domain.UserContext) ([]domain.Prediction, error) {
	out := make([]domain.Prediction, len(candidates))
	for i := range out {
		out[i] = domain.Prediction{PCTR: h.CTR, PCVR: h.CVR}
	}
	return out, nil
}

// Prediction attaches pCTR and pCVR to every candidate. The backend is
// optional; when it is absent, fails, times out or returns values outside
// (0,1) the heuristic fills in. The stage never removes candidates and
// never returns an error.
type Prediction struct {
	backend  port.Predictor
	fallback Heuristic
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewPrediction creates the prediction stage. backend may be nil.
func NewPrediction(backend port.Predictor, fallback Heuristic, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Prediction {
	return &Prediction{backend: backend, fallback: fallback, timeout: timeout, logger: logger, metrics: m}
}

func (p *Prediction) Name() string { return StagePrediction }

// Process scores in place and returns the same slice.
func (p *Prediction) Process(ctx context.Context, req Request, in []domain.Candidate) ([]domain.Candidate, error) {
	if len(in) == 0 {
		return in, nil
	}
	if p.backend == nil {
		p.applyHeuristic(in)
		return in, nil
	}

	preds, err := p.callBackend(ctx, in, req.User)
	if err == nil && len(preds) != len(in) {
		err = fmt.Errorf("backend returned %d predictions for %d candidates", len(preds), len(in))
	}
	if err != nil {
		reason := "backend_error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		p.metrics.PredictionFallback(reason, len(in))
		p.logger.Warn("prediction backend failed, using heuristic",
			slog.String("reason", reason),
			slog.Int("candidates", len(in)),
			slog.Any("error", err),
		)
		p.applyHeuristic(in)
		return in, nil
	}

	invalid := 0
	for i := range in {
		pctr, pcvr := preds[i].PCTR, preds[i].PCVR
		if !validProbability(pctr) {
			pctr = p.fallback.CTR
			invalid++
		}
		if !validProbability(pcvr) {
			pcvr = p.fallback.CVR
			invalid++
		}
		in[i].PCTR, in[i].PCVR = pctr, pcvr
	}
	if invalid > 0 {
		p.metrics.PredictionFallback("out_of_range", invalid)
		p.logger.Warn("prediction backend returned values outside (0,1)", slog.Int("values", invalid))
	}
	return in, nil
}

type backendResult struct {
	preds []domain.Prediction
	err   error
}

// callBackend waits for the backend at most until the timeout, even if the
// backend ignores its context. The backend gets its own copy of the batch
// because a late reply must not race with the fallback writing to in.
func (p *Prediction) callBackend(ctx context.Context, in []domain.Candidate, user domain.UserContext) ([]domain.Prediction, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	batch := slices.Clone(in)
	done := make(chan backendResult, 1)
	go func() {
		preds, err := p.backend.Predict(ctx, batch, user)
		done <- backendResult{preds: preds, err: err}
	}()

	select {
	case r := <-done:
		return r.preds, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Prediction) applyHeuristic(in []domain.Candidate) {
	for i := range in {
		in[i].PCTR = p.fallback.CTR
		in[i].PCVR = p.fallback.CVR
	}
}

func validProbability(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v < 1
}

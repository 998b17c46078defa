package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mesa-decision/internal/core/domain"
	"mesa-decision/internal/core/pipeline"
	"mesa-decision/internal/core/port"
	"mesa-decision/internal/metrics"
)

// Stages is the fixed sequence of pipeline stages one decision runs
// through. Data only flows forward.
type Stages struct {
	Retrieval  pipeline.Stage
	Filter     pipeline.BlockingStage
	Prediction pipeline.BlockingStage
	Ranking    pipeline.Stage
	Rerank     pipeline.Stage
}

// AdUseCase is the decision orchestrator. It implements port.AdUseCase by
// running the stages in order for one request, recording candidate counts
// and elapsed time at every boundary. It neither retries nor caches.
type AdUseCase struct {
	stages  Stages
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAdUseCase creates the orchestrator over the given stages.
func NewAdUseCase(stages Stages, logger *slog.Logger, m *metrics.Metrics) *AdUseCase {
	return &AdUseCase{stages: stages, logger: logger, metrics: m, now: time.Now}
}

// Recommend runs retrieval, filter, prediction, ranking and rerank for one
// ad slot and returns the rerank output unmodified. A stage error ends the
// decision: the returned Decision carries the reports gathered so far and
// no candidates.
func (u *AdUseCase) Recommend(ctx context.Context, user domain.UserContext, slotID string, limit int) (*port.Decision, error) {
	start := time.Now()
	req := pipeline.Request{User: user, SlotID: slotID, Limit: limit, Now: u.now()}
	d := &port.Decision{RequestID: uuid.NewString()}

	type step struct {
		name string
		fn   func([]domain.Candidate) ([]domain.Candidate, error)
	}
	inMemory := func(s pipeline.Stage) step {
		return step{s.Name(), func(in []domain.Candidate) ([]domain.Candidate, error) { return s.Process(req, in) }}
	}
	blocking := func(s pipeline.BlockingStage) step {
		return step{s.Name(), func(in []domain.Candidate) ([]domain.Candidate, error) { return s.Process(ctx, req, in) }}
	}
	steps := []step{
		inMemory(u.stages.Retrieval),
		blocking(u.stages.Filter),
		blocking(u.stages.Prediction),
		inMemory(u.stages.Ranking),
		inMemory(u.stages.Rerank),
	}

	var (
		candidates []domain.Candidate
		err        error
	)
	for _, st := range steps {
		stageStart := time.Now()
		in := len(candidates)
		candidates, err = st.fn(candidates)
		if err != nil {
			err = fmt.Errorf("%s: %w", st.name, err)
			candidates = nil
			break
		}
		elapsed := time.Since(stageStart)
		d.Stages = append(d.Stages, port.StageReport{Stage: st.name, In: in, Out: len(candidates), Elapsed: elapsed})
		u.metrics.ObserveStage(st.name, len(candidates), elapsed)
	}

	d.Candidates = candidates
	d.Elapsed = time.Since(start)

	if err != nil {
		u.metrics.RecordDecision("error")
		u.logger.Error("decision failed",
			slog.String("request_id", d.RequestID),
			slog.String("slot_id", slotID),
			slog.Any("error", err),
		)
		return d, err
	}

	outcome := "fill"
	if len(candidates) == 0 {
		outcome = "empty"
	}
	u.metrics.RecordDecision(outcome)
	u.logger.Debug("decision finished",
		slog.String("request_id", d.RequestID),
		slog.String("slot_id", slotID),
		slog.Any("stages", d.Stages),
		slog.Int("result", len(candidates)),
		slog.Duration("elapsed", d.Elapsed),
	)
	return d, nil
}

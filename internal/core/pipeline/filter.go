package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"mesa-decision/internal/core/domain"
	"mesa-decision/internal/core/port"
	"mesa-decision/internal/metrics"
)

// Filter is the admission control stage. It removes candidates whose
// campaign spent its daily budget and candidates the user has already seen
// up to the daily frequency cap. Counter reads are batched: one round trip
// per check type. Any read failure lets the affected candidates through.
type Filter struct {
	counters port.CounterStore
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewFilter creates the admission stage. timeout bounds each batch when
// positive.
func NewFilter(counters port.CounterStore, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Filter {
	return &Filter{counters: counters, timeout: timeout, logger: logger, metrics: m}
}

func (f *Filter) Name() string { return StageFilter }

// Process returns the surviving candidates in input order. It only fails
// when ctx is done, which means the request was abandoned.
func (f *Filter) Process(ctx context.Context, req Request, in []domain.Candidate) ([]domain.Candidate, error) {
	if len(in) == 0 {
		return in, nil
	}

	var exhausted, capped []bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exhausted, err = f.budgetExhausted(gctx, in, req.Now)
		return err
	})
	g.Go(func() error {
		var err error
		capped, err = f.frequencyCapped(gctx, in, req.User.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.Candidate, 0, len(in))
	for i, c := range in {
		if exhausted[i] || capped[i] {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// budgetExhausted marks candidates with a positive daily budget whose spend
// today reached it.
func (f *Filter) budgetExhausted(ctx context.Context, in []domain.Candidate, now time.Time) ([]bool, error) {
	marks := make([]bool, len(in))
	idx, ids := limited(in, func(c domain.Candidate) bool { return c.DailyBudget > 0 })
	if len(ids) == 0 {
		return marks, nil
	}

	readings, err := f.read(ctx, len(ids), func(ctx context.Context) ([]port.CounterReading, error) {
		return f.counters.DailySpend(ctx, ids, now)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.degraded("budget", len(ids), err)
		return marks, nil
	}

	for j, r := range readings {
		c := in[idx[j]]
		if r.Err != nil {
			f.degradedKey("budget", c.CampaignID, r.Err)
			continue
		}
		marks[idx[j]] = r.Value >= c.DailyBudget
	}
	return marks, nil
}

// frequencyCapped marks candidates with a positive daily cap the user has
// reached. Anonymous users are never capped.
func (f *Filter) frequencyCapped(ctx context.Context, in []domain.Candidate, userID string) ([]bool, error) {
	marks := make([]bool, len(in))
	if userID == "" {
		return marks, nil
	}
	idx, ids := limited(in, func(c domain.Candidate) bool { return c.FreqCapDaily > 0 })
	if len(ids) == 0 {
		return marks, nil
	}

	readings, err := f.read(ctx, len(ids), func(ctx context.Context) ([]port.CounterReading, error) {
		return f.counters.FrequencyCounts(ctx, userID, ids)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.degraded("frequency", len(ids), err)
		return marks, nil
	}

	for j, r := range readings {
		c := in[idx[j]]
		if r.Err != nil {
			f.degradedKey("frequency", c.CampaignID, r.Err)
			continue
		}
		marks[idx[j]] = r.Value >= float64(c.FreqCapDaily)
	}
	return marks, nil
}

// read runs one batch under the configured timeout and rejects a reply
// whose length does not match the request.
func (f *Filter) read(ctx context.Context, n int, fn func(context.Context) ([]port.CounterReading, error)) ([]port.CounterReading, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	readings, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if len(readings) != n {
		return nil, fmt.Errorf("counter store returned %d readings for %d keys", len(readings), n)
	}
	return readings, nil
}

func (f *Filter) degraded(check string, n int, err error) {
	f.metrics.CounterDegraded(check, n)
	f.logger.Warn("counter store batch failed, admitting candidates",
		slog.String("check", check),
		slog.Int("keys", n),
		slog.Any("error", err),
	)
}

func (f *Filter) degradedKey(check string, campaignID int64, err error) {
	f.metrics.CounterDegraded(check, 1)
	f.logger.Warn("counter read failed, admitting candidate",
		slog.String("check", check),
		slog.Int64("campaign_id", campaignID),
		slog.Any("error", err),
	)
}

// limited returns the positions and campaign ids of candidates that carry
// a limit. Duplicated campaigns are read once per candidate so positions
// stay aligned with readings.
func limited(in []domain.Candidate, hasLimit func(domain.Candidate) bool) ([]int, []int64) {
	var idx []int
	var ids []int64
	for i, c := range in {
		if hasLimit(c) {
			idx = append(idx, i)
			ids = append(ids, c.CampaignID)
		}
	}
	return idx, ids
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"mesa-decision/internal/core/port"
)

// CounterStore reads admission counters in one pipelined round trip per
// batch. It implements port.CounterStore.
type CounterStore struct {
	client goredis.Cmdable
}

// NewCounterStore creates a counter store over client.
func NewCounterStore(client goredis.Cmdable) *CounterStore {
	return &CounterStore{client: client}
}

// DailySpend returns today's spend per campaign, read from the
// spent_today field of each budget hash. Missing keys read as zero.
func (s *CounterStore) DailySpend(ctx context.Context, campaignIDs []int64, day time.Time) ([]port.CounterReading, error) {
	pipe := s.client.Pipeline()
	cmds := make([]*goredis.StringCmd, len(campaignIDs))
	for i, id := range campaignIDs {
		cmds[i] = pipe.HGet(ctx, port.BudgetKey(id, day), port.BudgetSpentField)
	}
	return collect(ctx, pipe, cmds)
}

// FrequencyCounts returns how many impressions of each campaign userID saw
// in the current frequency window. Missing keys read as zero.
func (s *CounterStore) FrequencyCounts(ctx context.Context, userID string, campaignIDs []int64) ([]port.CounterReading, error) {
	pipe := s.client.Pipeline()
	cmds := make([]*goredis.StringCmd, len(campaignIDs))
	for i, id := range campaignIDs {
		cmds[i] = pipe.Get(ctx, port.FreqKey(userID, id))
	}
	return collect(ctx, pipe, cmds)
}

// collect executes pipe and converts its replies. Exec reports the first
// failed command as its error; per-key failures are kept on the readings,
// so only transport errors, which fail every command, fail the batch.
func collect(ctx context.Context, pipe goredis.Pipeliner, cmds []*goredis.StringCmd) ([]port.CounterReading, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	_, execErr := pipe.Exec(ctx)

	readings := make([]port.CounterReading, len(cmds))
	failed := 0
	for i, cmd := range cmds {
		readings[i] = reading(cmd)
		if readings[i].Err != nil {
			failed++
		}
	}
	if execErr != nil && !errors.Is(execErr, goredis.Nil) && failed == len(cmds) {
		return nil, fmt.Errorf("redis pipeline: %w", execErr)
	}
	return readings, nil
}

func reading(cmd *goredis.StringCmd) port.CounterReading {
	raw, err := cmd.Result()
	if errors.Is(err, goredis.Nil) {
		return port.CounterReading{}
	}
	if err != nil {
		return port.CounterReading{Err: err}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return port.CounterReading{Err: fmt.Errorf("parse counter %q: %w", raw, err)}
	}
	return port.CounterReading{Value: v}
}

// Package pipeline implements the five stages of an ad decision:
// retrieval, admission filter, prediction, ranking and rerank.
//
// Stages come in two shapes. A Stage is a pure in-memory transformation and
// never blocks. A BlockingStage may wait on a network round trip and
// therefore takes a context that bounds and cancels it. The orchestrator's
// concurrency contract is visible in which of the two it calls.
package pipeline

import (
	"context"
	"time"

	"mesa-decision/internal/core/domain"
)

// Stage names used for logging and metrics.
const (
	StageRetrieval  = "retrieval"
	StageFilter     = "filter"
	StagePrediction = "prediction"
	StageRanking    = "ranking"
	StageRerank     = "rerank"
)

// Request carries the per-request inputs every stage can see.
type Request struct {
	User   domain.UserContext
	SlotID string
	Limit  int
	// Now is the request time schedules are checked against.
	Now time.Time
}

// Stage processes a candidate batch synchronously.
type Stage interface {
	Name() string
	Process(req Request, in []domain.Candidate) ([]domain.Candidate, error)
}

// BlockingStage processes a candidate batch and may suspend on I/O.
type BlockingStage interface {
	Name() string
	Process(ctx context.Context, req Request, in []domain.Candidate) ([]domain.Candidate, error)
}

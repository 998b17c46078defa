package port

import (
	"context"
	"time"

	"mesa-decision/internal/core/domain"
)

// AdUseCase defines the business operations exposed by the decision engine.
// This interface represents the primary port into the application domain.
type AdUseCase interface {
	// Recommend runs the decision pipeline for one ad slot and returns the
	// ranked, diversity-constrained candidates. A limit <= 0 selects the
	// configured default. The only error class returned is pipeline-fatal;
	// every recoverable failure degrades to fewer or default-scored
	// candidates.
	Recommend(ctx context.Context, user domain.UserContext, slotID string, limit int) (*Decision, error)
}

// Decision is the outcome of one Recommend call.
type Decision struct {
	RequestID  string             `json:"request_id"`
	Candidates []domain.Candidate `json:"candidates"`
	Stages     []StageReport      `json:"stages"`
	Elapsed    time.Duration      `json:"elapsed"`
}

// StageReport records what one pipeline stage did for a request.
type StageReport struct {
	Stage   string        `json:"stage"`
	In      int           `json:"in"`
	Out     int           `json:"out"`
	Elapsed time.Duration `json:"elapsed"`
}

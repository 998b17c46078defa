package port

import (
	"context"

	"mesa-decision/internal/core/domain"
)

// Predictor is a scoring backend. It returns one prediction per candidate,
// parallel to the input slice.
type Predictor interface {
	Predict(ctx context.Context, candidates []domain.Candidate, user domain.UserContext) ([]domain.Prediction, error)
}

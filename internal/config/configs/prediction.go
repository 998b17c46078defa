package configs

import (
	"fmt"
	"strings"
	"time"
)

const (
	PredictionHeuristic  = "heuristic"
	PredictionHistorical = "historical"
	PredictionRemote     = "remote"
)

// Prediction selects and tunes the scoring backend. The heuristic defaults
// are also the fallback whenever the selected backend fails.
type Prediction struct {
	Backend    string        `env:"BACKEND" envDefault:"heuristic"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30ms"`
	DefaultCTR float64       `env:"DEFAULT_CTR" envDefault:"0.015"`
	DefaultCVR float64       `env:"DEFAULT_CVR" envDefault:"0.005"`

	// RemoteURL is the scoring endpoint of the remote backend.
	RemoteURL string `env:"REMOTE_URL"`
	// BreakerFailures consecutive remote failures open the circuit for
	// BreakerCooldown.
	BreakerFailures uint32        `env:"BREAKER_FAILURES" envDefault:"5"`
	BreakerCooldown time.Duration `env:"BREAKER_COOLDOWN" envDefault:"30s"`

	// HistoryWindow is how far back the historical backend aggregates
	// hourly stats; HistoryTTL is how long an aggregate stays cached.
	HistoryWindow time.Duration `env:"HISTORY_WINDOW" envDefault:"168h"`
	HistoryTTL    time.Duration `env:"HISTORY_TTL" envDefault:"5m"`
}

// BackendName normalises Backend.
func (c Prediction) BackendName() string {
	return strings.ToLower(strings.TrimSpace(c.Backend))
}

// Validate rejects unknown backends, a remote backend without an endpoint
// and default probabilities outside (0, 1).
func (c Prediction) Validate() error {
	switch c.BackendName() {
	case PredictionHeuristic, PredictionHistorical:
	case PredictionRemote:
		if c.RemoteURL == "" {
			return fmt.Errorf("prediction: remote backend requires PREDICTION_REMOTE_URL")
		}
	default:
		return fmt.Errorf("prediction: unknown backend %q", c.Backend)
	}
	if c.DefaultCTR <= 0 || c.DefaultCTR >= 1 || c.DefaultCVR <= 0 || c.DefaultCVR >= 1 {
		return fmt.Errorf("prediction: default ctr/cvr must be in (0, 1)")
	}
	return nil
}

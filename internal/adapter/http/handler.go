package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mesa-decision/internal/core/port"
)

// Readiness reports whether the catalog cache holds a snapshot.
type Readiness interface {
	Ready() bool
}

// Tracker records delivery after an ad was shown. It feeds the counters the
// admission filter reads.
type Tracker interface {
	RecordImpression(ctx context.Context, userID string, campaignID int64) error
	RecordSpend(ctx context.Context, campaignID int64, day time.Time, amount float64) error
}

// Handler is the inbound HTTP adapter. Routes are registered on a
// chi.Router.
type Handler struct {
	svc     port.AdUseCase
	ready   Readiness
	tracker Tracker
	logger  *slog.Logger
	router  chi.Router
	now     func() time.Time
}

// NewHandler creates a handler with all routes configured. metrics serves
// GET /metrics and may be nil.
func NewHandler(svc port.AdUseCase, ready Readiness, tracker Tracker, metrics http.Handler, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, ready: ready, tracker: tracker, logger: logger, now: time.Now}
	r := chi.NewRouter()

	r.Get("/healthz", h.handleHealth)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ad/request", h.handleAdRequest)
		r.Post("/ad/impression", h.handleImpression)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// handleHealth answers 200 once the first catalog snapshot is published
// and 503 before that.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if !h.ready.Ready() {
		http.Error(w, "catalog not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

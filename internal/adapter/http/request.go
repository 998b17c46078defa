package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"mesa-decision/internal/core/domain"
)

// adRequest is the body of POST /api/v1/ad/request: the user context
// fields at the top level plus the slot and the number of ads wanted.
type adRequest struct {
	domain.UserContext
	SlotID string `json:"slot_id"`
	Limit  int    `json:"limit"`
}

// handleAdRequest runs one decision. It returns the decision as JSON, 204
// when nothing is eligible, 503 while the catalog has not loaded and 500
// for any other pipeline failure. Parsing errors produce 400.
func (h *Handler) handleAdRequest(w http.ResponseWriter, r *http.Request) {
	var req adRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Recommend(r.Context(), req.UserContext, req.SlotID, req.Limit)
	switch {
	case errors.Is(err, domain.ErrCatalogNotReady):
		http.Error(w, "catalog not ready", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.logger.Error("ad request failed", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(d.Candidates) == 0 {
		w.Header().Set("X-Request-Id", d.RequestID)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, h.logger, d)
}

// impressionRequest is the body of POST /api/v1/ad/impression. Cost is the
// amount charged for the impression, if any.
type impressionRequest struct {
	UserID     string  `json:"user_id"`
	CampaignID int64   `json:"campaign_id"`
	Cost       float64 `json:"cost"`
}

// handleImpression records a served impression against the user's
// frequency counter and, when Cost is positive, today's campaign spend.
func (h *Handler) handleImpression(w http.ResponseWriter, r *http.Request) {
	var req impressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.CampaignID <= 0 || req.Cost < 0 {
		http.Error(w, "invalid impression", http.StatusBadRequest)
		return
	}

	if err := h.tracker.RecordImpression(r.Context(), req.UserID, req.CampaignID); err != nil {
		h.logger.Error("record impression failed", slog.Int64("campaign_id", req.CampaignID), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if req.Cost > 0 {
		if err := h.tracker.RecordSpend(r.Context(), req.CampaignID, h.now(), req.Cost); err != nil {
			h.logger.Error("record spend failed", slog.Int64("campaign_id", req.CampaignID), slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response error", slog.Any("error", err))
	}
}

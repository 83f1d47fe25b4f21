package httpadapter

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"creator-ads/internal/core/domain"
)

type estimateRequest struct {
	Budget           decimal.Decimal `json:"budget"`
	AllowedMarketers int             `json:"allowedMarketers"`
}

func (h *Handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	est, err := h.estimator.Estimate(req.Budget, req.AllowedMarketers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// handleSweep triggers a payout sweep outside the schedule. Admin only.
func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if actor.Role != domain.RoleAdmin {
		h.writeError(w, r, domain.ErrForbidden)
		return
	}
	// The sweep finishes its pass even if the caller goes away.
	report, err := h.sweeper.RunOnce(context.WithoutCancel(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

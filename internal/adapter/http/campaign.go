package httpadapter

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

type createCampaignRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Budget           decimal.Decimal `json:"budget"`
	AllowedMarketers int             `json:"allowedMarketers"`
	MinFollowerCount int64           `json:"minFollowerCount"`
}

type campaignResponse struct {
	ID               uuid.UUID       `json:"id"`
	SellerID         uuid.UUID       `json:"sellerId"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Budget           decimal.Decimal `json:"budget"`
	RemainingBudget  decimal.Decimal `json:"remainingBudget"`
	TotalPayout      decimal.Decimal `json:"totalPayout"`
	AllowedMarketers int             `json:"allowedMarketers"`
	MinFollowerCount int64           `json:"minFollowerCount"`
	Status           string          `json:"status"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	ApplicationCount *int            `json:"applicationCount,omitempty"`
	AcceptedCount    *int            `json:"acceptedCount,omitempty"`
}

func toCampaign(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:               c.ID,
		SellerID:         c.SellerID,
		Title:            c.Title,
		Description:      c.Description,
		Budget:           c.Budget,
		RemainingBudget:  c.RemainingBudget,
		TotalPayout:      c.TotalPayout,
		AllowedMarketers: c.AllowedMarketers,
		MinFollowerCount: c.MinFollowerCount,
		Status:           string(c.Status),
		ExpiresAt:        c.ExpiresAt,
		CreatedAt:        c.CreatedAt,
	}
}

func toSummary(s port.CampaignSummary) campaignResponse {
	resp := toCampaign(s.Campaign)
	resp.ApplicationCount = &s.ApplicationCount
	resp.AcceptedCount = &s.AcceptedCount
	return resp
}

type payoutResponse struct {
	ID                uuid.UUID       `json:"id"`
	CycleID           uuid.UUID       `json:"cycleId"`
	ApplicationID     uuid.UUID       `json:"applicationId"`
	MarketerID        uuid.UUID       `json:"marketerId"`
	Amount            decimal.Decimal `json:"amount"`
	PerformanceFactor decimal.Decimal `json:"performanceFactor"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req createCampaignRequest
	if err = decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.campaigns.Create(r.Context(), actor, port.CreateCampaignInput{
		Title:            req.Title,
		Description:      req.Description,
		Budget:           req.Budget,
		AllowedMarketers: req.AllowedMarketers,
		MinFollowerCount: req.MinFollowerCount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCampaign(*c))
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.campaigns.List(r.Context(), actor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]campaignResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSummary(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.campaigns.Get(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummary(*s))
}

func (h *Handler) handleReopenCampaign(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.campaigns.Reopen(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCampaign(*c))
}

func (h *Handler) handleListPayouts(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	records, err := h.campaigns.Payouts(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]payoutResponse, 0, len(records))
	for _, p := range records {
		out = append(out, payoutResponse{
			ID:                p.ID,
			CycleID:           p.CycleID,
			ApplicationID:     p.ApplicationID,
			MarketerID:        p.MarketerID,
			Amount:            p.Amount,
			PerformanceFactor: p.PerformanceFactor,
			CreatedAt:         p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// actorAndID resolves the caller and the {id} path parameter.
func actorAndID(r *http.Request) (domain.Actor, uuid.UUID, error) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		return domain.Actor{}, uuid.Nil, err
	}
	id, err := pathID(r, "id")
	return actor, id, err
}

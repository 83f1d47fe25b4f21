package httpadapter

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"creator-ads/internal/core/domain"
)

type submissionResponse struct {
	VideoLink   string    `json:"videoLink"`
	VideoID     string    `json:"videoId"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	LastUpdated time.Time `json:"lastUpdated"`
	IsActive    bool      `json:"isActive"`
}

type applicationResponse struct {
	ID            uuid.UUID           `json:"id"`
	CampaignID    uuid.UUID           `json:"campaignId"`
	MarketerID    uuid.UUID           `json:"marketerId"`
	Status        string              `json:"status"`
	Submission    *submissionResponse `json:"submission,omitempty"`
	PendingPayout decimal.Decimal     `json:"pendingPayout"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func toApplication(a domain.Application) applicationResponse {
	resp := applicationResponse{
		ID:            a.ID,
		CampaignID:    a.CampaignID,
		MarketerID:    a.MarketerID,
		Status:        string(a.Status),
		PendingPayout: a.PendingPayout,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if s := a.Submission; s != nil {
		resp.Submission = &submissionResponse{
			VideoLink:   s.VideoLink,
			VideoID:     s.VideoID,
			Views:       s.Stats.Views,
			Likes:       s.Stats.Likes,
			Comments:    s.Stats.Comments,
			LastUpdated: s.Stats.LastUpdated,
			IsActive:    s.Stats.IsActive,
		}
	}
	return resp
}

func toApplications(apps []domain.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplication(a))
	}
	return out
}

type applyResponse struct {
	Application     applicationResponse `json:"application"`
	PriorApplicants int                 `json:"priorApplicants"`
}

type campaignApplicationsResponse struct {
	Applications []applicationResponse `json:"applications"`
	Total        int                   `json:"total"`
	Accepted     int                   `json:"accepted"`
}

type abortResponse struct {
	Application    applicationResponse `json:"application"`
	Penalty        decimal.Decimal     `json:"penalty"`
	CampaignStatus string              `json:"campaignStatus"`
}

type submitRequest struct {
	VideoLink string `json:"videoLink"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.applications.Apply(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, applyResponse{
		Application:     toApplication(res.Application),
		PriorApplicants: res.PriorApplicant,
	})
}

func (h *Handler) handleListCampaignApplications(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.applications.ListForCampaign(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignApplicationsResponse{
		Applications: toApplications(res.Applications),
		Total:        res.Total,
		Accepted:     res.Accepted,
	})
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	apps, err := h.applications.ListMine(r.Context(), actor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplications(apps))
}

type applicationStepFunc func(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Application, error)

// applicationStep adapts a single-transition use case method to a handler.
func (h *Handler) applicationStep(step applicationStepFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		a, err := step(r.Context(), actor, id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplication(*a))
	}
}

func (h *Handler) handleAbort(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.applications.Abort(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, abortResponse{
		Application:    toApplication(res.Application),
		Penalty:        res.Penalty,
		CampaignStatus: string(res.Campaign.Status),
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req submitRequest
	if err = decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.applications.AttachSubmission(r.Context(), actor, id, req.VideoLink)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplication(*a))
}

package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"creator-ads/internal/core/port"
)

// Sweeper runs one guarded payout sweep.
type Sweeper interface {
	RunOnce(ctx context.Context) (*port.SweepReport, error)
}

// Handler is the inbound HTTP adapter. Every route except the health check
// requires a bearer token.
type Handler struct {
	estimator    port.BudgetEstimator
	campaigns    port.CampaignUseCase
	applications port.ApplicationUseCase
	sweeper      Sweeper
	logger       *slog.Logger
	router       chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(
	estimator port.BudgetEstimator,
	campaigns port.CampaignUseCase,
	applications port.ApplicationUseCase,
	sweeper Sweeper,
	auth *Authenticator,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		estimator:    estimator,
		campaigns:    campaigns,
		applications: applications,
		sweeper:      sweeper,
		logger:       logger,
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Post("/budget/estimate", h.handleEstimate)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Post("/reopen", h.handleReopenCampaign)
				r.Post("/applications", h.handleApply)
				r.Get("/applications", h.handleListCampaignApplications)
				r.Get("/payouts", h.handleListPayouts)
			})
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/mine", h.handleListMine)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/accept", h.applicationStep(h.applications.Accept))
				r.Post("/shortlist", h.applicationStep(h.applications.Accept))
				r.Post("/reject", h.applicationStep(h.applications.Reject))
				r.Post("/withdraw", h.applicationStep(h.applications.Withdraw))
				r.Post("/abort", h.handleAbort)
				r.Post("/submission", h.handleSubmit)
			})
		})

		r.Post("/payouts/sweep", h.handleSweep)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

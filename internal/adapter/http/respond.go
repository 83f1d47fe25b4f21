package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps a use case error to an HTTP status. Zero means the error
// is not user facing.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrVideoNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrOwnershipMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrCampaignFull),
		errors.Is(err, domain.ErrCapacityFull),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrSweepInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrInsufficientCredits),
		errors.Is(err, domain.ErrCampaignInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEngagementSourceUnavailable):
		return http.StatusServiceUnavailable
	}
	return 0
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status := statusFor(err); status != 0 {
		writeMessage(w, status, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	writeMessage(w, http.StatusInternalServerError, "internal error")
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

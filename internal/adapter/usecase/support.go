package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// maxAttempts bounds retries of a unit of work that lost a write race.
const maxAttempts = 3

// withRetry re-runs fn while it fails with domain.ErrConflict. fn must
// re-read every value it depends on.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for range maxAttempts {
		if err = fn(); !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}

// emitter publishes events and notifications after a unit of work
// committed. Failures are logged and never undo the committed change.
type emitter struct {
	events   port.EventPublisher
	notifier port.Notifier
	logger   *slog.Logger
}

func (e emitter) emit(ctx context.Context, eventType string, key uuid.UUID, v any) {
	if e.events == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		e.logger.Error("encode event", slog.String("type", eventType), slog.Any("error", err))
		return
	}
	if err = e.events.Publish(ctx, eventType, key.String(), payload); err != nil {
		e.logger.Warn("publish event", slog.String("type", eventType), slog.String("key", key.String()), slog.Any("error", err))
	}
}

func (e emitter) notify(ctx context.Context, userID uuid.UUID, message string) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, userID, message); err != nil {
		e.logger.Warn("notify user", slog.String("user_id", userID.String()), slog.Any("error", err))
	}
}

func (e emitter) statusChanged(ctx context.Context, c domain.Campaign, from domain.CampaignStatus) {
	if from == c.Status {
		return
	}
	e.logger.Info("campaign status changed",
		slog.String("campaign_id", c.ID.String()),
		slog.String("from", string(from)),
		slog.String("to", string(c.Status)))
	e.emit(ctx, domain.EventCampaignStatusChanged, c.ID, domain.StatusChanged{
		CampaignID: c.ID,
		From:       from,
		To:         c.Status,
		At:         c.UpdatedAt,
	})
}

// ownsCampaign reports whether the actor may manage the campaign.
func ownsCampaign(actor domain.Actor, c *domain.Campaign) bool {
	return actor.Role == domain.RoleAdmin || (actor.Role == domain.RoleSeller && c.SellerID == actor.UserID)
}

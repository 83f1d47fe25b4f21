// Package logbus writes events and notifications to the structured log. It
// is used when no message broker is configured.
package logbus

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"creator-ads/internal/core/port"
)

// Publisher logs every event at info level.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher returns a log-backed event publisher.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With(slog.String("component", "events"))}
}

// Publish implements port.EventPublisher.
func (p *Publisher) Publish(ctx context.Context, eventType string, key string, payload []byte) error {
	p.logger.InfoContext(ctx, "event",
		slog.String("type", eventType),
		slog.String("key", key),
		slog.String("payload", string(payload)))
	return nil
}

// Notifier logs notifications instead of delivering them.
type Notifier struct {
	logger *slog.Logger
}

// NewNotifier returns a log-backed notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger.With(slog.String("component", "notifications"))}
}

// Notify implements port.Notifier.
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	n.logger.InfoContext(ctx, "notification",
		slog.String("user_id", userID.String()),
		slog.String("message", message))
	return nil
}

var (
	_ port.EventPublisher = (*Publisher)(nil)
	_ port.Notifier       = (*Notifier)(nil)
)

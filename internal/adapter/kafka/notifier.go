package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// Notification is the payload of a notification.requested event. The chat
// bot service consumes it and delivers the message.
type Notification struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier hands user notifications to the delivery service through the
// event bus.
type Notifier struct {
	events port.EventPublisher
	nowFn  func() time.Time
}

// NewNotifier returns a notifier publishing on events.
func NewNotifier(events port.EventPublisher) *Notifier {
	return &Notifier{events: events, nowFn: func() time.Time { return time.Now().UTC() }}
}

// Notify implements port.Notifier.
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	payload, err := json.Marshal(Notification{UserID: userID, Message: message, At: n.nowFn()})
	if err != nil {
		return err
	}
	return n.events.Publish(ctx, domain.EventNotificationRequested, userID.String(), payload)
}

var _ port.Notifier = (*Notifier)(nil)

package port

import (
	"context"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
)

// EngagementSource reads engagement counters of a published video. It
// returns domain.ErrVideoNotFound when the video is gone.
type EngagementSource interface {
	FetchStats(ctx context.Context, videoLink string) (domain.EngagementStats, error)
}

// IdentityVerifier resolves the account handle that owns a video.
type IdentityVerifier interface {
	OwnerOf(ctx context.Context, videoID string) (string, error)
}

// Notifier delivers a message to a user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, message string) error
}

// EventPublisher publishes domain events. The key orders events of one
// aggregate.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, payload []byte) error
}

// SweepLock is a lease shared by every replica running the payout sweep.
type SweepLock interface {
	// Acquire returns false when another holder owns the lease.
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationStatus is the state of a marketer's application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
	ApplicationAborted   ApplicationStatus = "aborted"
	ApplicationCompleted ApplicationStatus = "completed"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn},
	ApplicationAccepted: {ApplicationAborted, ApplicationCompleted},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Application is a marketer's request to take part in a campaign.
type Application struct {
	ID            uuid.UUID
	CampaignID    uuid.UUID
	MarketerID    uuid.UUID
	Status        ApplicationStatus
	Submission    *Submission
	LastProcessed ProcessedStats
	PendingPayout decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewApplication returns a pending application.
func NewApplication(campaignID, marketerID uuid.UUID, now time.Time) Application {
	return Application{
		ID:            uuid.New(),
		CampaignID:    campaignID,
		MarketerID:    marketerID,
		Status:        ApplicationPending,
		PendingPayout: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Transition moves the application to status or returns ErrInvalidTransition.
func (a *Application) Transition(to ApplicationStatus, now time.Time) error {
	if !CanTransition(a.Status, to) {
		return ErrInvalidTransition
	}
	a.Status = to
	a.UpdatedAt = now
	return nil
}

// Attach stores a submission. The processed high-water mark is kept so a
// first submission is paid from zero.
func (a *Application) Attach(link, videoID string, stats EngagementStats, now time.Time) error {
	if a.Status != ApplicationAccepted {
		return ErrInvalidTransition
	}
	a.Submission = &Submission{
		VideoLink: link,
		VideoID:   videoID,
		Stats: SnapshotStats{
			Views:       stats.Views,
			Likes:       stats.Likes,
			Comments:    stats.Comments,
			LastUpdated: now,
			IsActive:    true,
		},
	}
	a.UpdatedAt = now
	return nil
}

// Payable reports whether the sweep should consider the application.
func (a Application) Payable() bool {
	return a.Status == ApplicationAccepted && a.Submission != nil && a.Submission.Stats.IsActive
}

// Delta returns the unprocessed engagement. Negative values are clamped.
func (a Application) Delta() (views, likes int64) {
	if a.Submission == nil {
		return 0, 0
	}
	views = max(a.Submission.Stats.Views-a.LastProcessed.Views, 0)
	likes = max(a.Submission.Stats.Likes-a.LastProcessed.Likes, 0)
	return views, likes
}

// MarkProcessed advances the high-water mark to the given engagement.
func (a *Application) MarkProcessed(views, likes int64, paid decimal.Decimal, now time.Time) {
	a.LastProcessed.Views = max(a.LastProcessed.Views, views)
	a.LastProcessed.Likes = max(a.LastProcessed.Likes, likes)
	a.LastProcessed.ProcessedAt = &now
	a.PendingPayout = a.PendingPayout.Add(paid)
	a.UpdatedAt = now
}

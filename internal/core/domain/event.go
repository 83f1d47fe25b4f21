package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types published on the event bus.
const (
	EventApplicationAccepted   = "application.accepted"
	EventApplicationAborted    = "application.aborted"
	EventPayoutCredited        = "payout.credited"
	EventCampaignBudgetLow     = "campaign.budget_low"
	EventCampaignStatusChanged = "campaign.status_changed"
	EventNotificationRequested = "notification.requested"
)

// PayoutCredited is emitted for every payout record.
type PayoutCredited struct {
	PayoutID          uuid.UUID       `json:"payout_id"`
	CycleID           uuid.UUID       `json:"cycle_id"`
	CampaignID        uuid.UUID       `json:"campaign_id"`
	ApplicationID     uuid.UUID       `json:"application_id"`
	MarketerID        uuid.UUID       `json:"marketer_id"`
	Amount            decimal.Decimal `json:"amount"`
	PerformanceFactor decimal.Decimal `json:"performance_factor"`
	CreatedAt         time.Time       `json:"created_at"`
}

// BudgetLow warns that a campaign has paid out most of its budget.
type BudgetLow struct {
	CampaignID      uuid.UUID       `json:"campaign_id"`
	Budget          decimal.Decimal `json:"budget"`
	TotalPayout     decimal.Decimal `json:"total_payout"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
}

// StatusChanged records a campaign status transition.
type StatusChanged struct {
	CampaignID uuid.UUID      `json:"campaign_id"`
	From       CampaignStatus `json:"from"`
	To         CampaignStatus `json:"to"`
	At         time.Time      `json:"at"`
}

// ApplicationEvent records accept and abort decisions.
type ApplicationEvent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	CampaignID    uuid.UUID `json:"campaign_id"`
	MarketerID    uuid.UUID `json:"marketer_id"`
	At            time.Time `json:"at"`
}

package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"creator-ads/internal/core/domain"
)

// BudgetEstimator projects achievable engagement for a budget.
type BudgetEstimator interface {
	Estimate(budget decimal.Decimal, allowedMarketers int) (Estimate, error)
}

// CampaignUseCase covers the campaign lifecycle and capacity accounting.
type CampaignUseCase interface {
	Create(ctx context.Context, actor domain.Actor, in CreateCampaignInput) (*domain.Campaign, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*CampaignSummary, error)
	// List returns the seller's own campaigns, or the campaigns a marketer
	// is eligible to apply to.
	List(ctx context.Context, actor domain.Actor) ([]CampaignSummary, error)
	// Reopen makes a hidden campaign active again and refreshes its expiry.
	Reopen(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Campaign, error)
	Payouts(ctx context.Context, actor domain.Actor, id uuid.UUID) ([]domain.PayoutRecord, error)
}

// ApplicationUseCase is the application state machine.
type ApplicationUseCase interface {
	Apply(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*ApplyResult, error)
	Accept(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*domain.Application, error)
	Reject(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*domain.Application, error)
	Withdraw(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*domain.Application, error)
	Abort(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*AbortResult, error)
	AttachSubmission(ctx context.Context, actor domain.Actor, applicationID uuid.UUID, videoLink string) (*domain.Application, error)
	ListForCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*CampaignApplications, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]domain.Application, error)
}

// PayoutUseCase runs the periodic payout sweep.
type PayoutUseCase interface {
	Sweep(ctx context.Context) (*SweepReport, error)
}

// Estimate is the result of a budget projection.
type Estimate struct {
	Plan               string          `json:"plan"`
	EstimatedViews     int64           `json:"estimatedViews"`
	EstimatedLikes     int64           `json:"estimatedLikes"`
	MinimumDeposit     decimal.Decimal `json:"minimumDeposit"`
	RecommendedDeposit decimal.Decimal `json:"recommendedDeposit"`
	MarketerAllocation string          `json:"marketerAllocation"`
}

// CreateCampaignInput carries the seller's campaign parameters.
type CreateCampaignInput struct {
	Title            string
	Description      string
	Budget           decimal.Decimal
	AllowedMarketers int
	MinFollowerCount int64
}

// ApplyResult is a new application and how many marketers applied before.
type ApplyResult struct {
	Application    domain.Application
	PriorApplicant int
}

// AbortResult is an aborted application and the penalty charged.
type AbortResult struct {
	Application domain.Application
	Penalty     decimal.Decimal
	Campaign    domain.Campaign
}

// CampaignApplications lists a campaign's applications for its seller.
type CampaignApplications struct {
	Applications []domain.Application
	Total        int
	Accepted     int
}

// SweepReport summarises one payout sweep.
type SweepReport struct {
	CycleID          uuid.UUID       `json:"cycleId"`
	CampaignsScanned int             `json:"campaignsScanned"`
	CampaignsPaid    int             `json:"campaignsPaid"`
	PayoutsCreated   int             `json:"payoutsCreated"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	Errors           int             `json:"errors"`
}

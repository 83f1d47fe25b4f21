package port

import (
	"context"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
)

// Repository defines the persistence layer for the campaign core. It is an
// outbound port in hexagonal architecture. Reads outside of WithinCampaign
// see committed state only; every write goes through a Tx.
type Repository interface {
	// GetCampaign returns domain.ErrNotFound when the campaign is missing.
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	// ListCampaigns returns campaigns matching the filter, newest first.
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]CampaignSummary, error)
	// ListPayableCampaignIDs returns ids of campaigns the payout sweep must
	// visit: active, or completed with budget left.
	ListPayableCampaignIDs(ctx context.Context) ([]uuid.UUID, error)

	GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)

	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	ListPayouts(ctx context.Context, campaignID uuid.UUID) ([]domain.PayoutRecord, error)

	// WithinCampaign runs fn in a unit of work that holds an exclusive lock
	// on the campaign. Every write made through tx commits or rolls back
	// together. Implementations return domain.ErrConflict when a concurrent
	// writer forced the unit to abort; callers may retry.
	WithinCampaign(ctx context.Context, campaignID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// CreateCampaign stores a new campaign.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
}

// Tx is the transactional view handed to WithinCampaign callbacks.
type Tx interface {
	// Campaign returns the locked campaign.
	Campaign(ctx context.Context) (*domain.Campaign, error)
	UpdateCampaign(ctx context.Context, c *domain.Campaign) error
	// CountApplications is the authoritative capacity read.
	CountApplications(ctx context.Context, status domain.ApplicationStatus) (int, error)
	ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	// FindApplication looks up the application of a marketer. It returns
	// domain.ErrNotFound when the marketer has not applied.
	FindApplication(ctx context.Context, marketerID uuid.UUID) (*domain.Application, error)
	// InsertApplication returns domain.ErrDuplicateApplication when the
	// marketer already applied.
	InsertApplication(ctx context.Context, a *domain.Application) error
	UpdateApplication(ctx context.Context, a *domain.Application) error
	// GetUser locks and returns a user.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	// InsertPayout appends to the ledger. It returns domain.ErrConflict
	// when the application was already paid in the cycle.
	InsertPayout(ctx context.Context, p *domain.PayoutRecord) error
}

// CampaignFilter selects campaigns for listing. Zero values match all.
type CampaignFilter struct {
	SellerID     *uuid.UUID
	Status       domain.CampaignStatus
	MaxFollowers *int64
}

// CampaignSummary is a campaign with its application counters.
type CampaignSummary struct {
	Campaign         domain.Campaign
	ApplicationCount int
	AcceptedCount    int
}

// ApplicationFilter selects applications for listing.
type ApplicationFilter struct {
	CampaignID *uuid.UUID
	MarketerID *uuid.UUID
	Status     domain.ApplicationStatus
}

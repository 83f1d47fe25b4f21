package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// CampaignUseCase manages campaigns and their marketer capacity.
type CampaignUseCase struct {
	repo   port.Repository
	policy domain.Policy
	out    emitter
	nowFn  func() time.Time
}

// NewCampaignUseCase creates the campaign use case.
func NewCampaignUseCase(repo port.Repository, policy domain.Policy, events port.EventPublisher, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{
		repo:   repo,
		policy: policy,
		out:    emitter{events: events, logger: logger},
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a new active campaign for the calling seller.
func (u *CampaignUseCase) Create(ctx context.Context, actor domain.Actor, in port.CreateCampaignInput) (*domain.Campaign, error) {
	if actor.Role != domain.RoleSeller {
		return nil, domain.ErrForbidden
	}
	c, err := domain.NewCampaign(actor.UserID, in.Title, in.Description, in.Budget,
		in.AllowedMarketers, in.MinFollowerCount, u.nowFn(), u.policy.ReopenWindow)
	if err != nil {
		return nil, err
	}
	if err = u.repo.CreateCampaign(ctx, &c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return &c, nil
}

// Get returns a campaign with its counters. Marketers may only see active
// campaigns; sellers only their own.
func (u *CampaignUseCase) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*port.CampaignSummary, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case ownsCampaign(actor, c):
	case actor.Role == domain.RoleMarketer && c.Status == domain.CampaignActive:
	default:
		return nil, domain.ErrForbidden
	}
	apps, err := u.repo.ListApplications(ctx, port.ApplicationFilter{CampaignID: &id})
	if err != nil {
		return nil, err
	}
	sum := &port.CampaignSummary{Campaign: *c, ApplicationCount: len(apps)}
	for _, a := range apps {
		if a.Status == domain.ApplicationAccepted {
			sum.AcceptedCount++
		}
	}
	return sum, nil
}

// List returns a seller's campaigns, or the active campaigns a marketer has
// enough followers for.
func (u *CampaignUseCase) List(ctx context.Context, actor domain.Actor) ([]port.CampaignSummary, error) {
	var filter port.CampaignFilter
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleSeller:
		filter.SellerID = &actor.UserID
	case domain.RoleMarketer:
		marketer, err := u.repo.GetUser(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		filter.Status = domain.CampaignActive
		filter.MaxFollowers = &marketer.FollowerCount
	default:
		return nil, domain.ErrForbidden
	}
	return u.repo.ListCampaigns(ctx, filter)
}

// Reopen makes a hidden campaign discoverable again and refreshes its
// expiry.
func (u *CampaignUseCase) Reopen(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
	var (
		campaign domain.Campaign
		from     domain.CampaignStatus
	)
	err := withRetry(ctx, func() error {
		return u.repo.WithinCampaign(ctx, id, func(ctx context.Context, tx port.Tx) error {
			c, err := tx.Campaign(ctx)
			if err != nil {
				return err
			}
			if !ownsCampaign(actor, c) {
				return domain.ErrForbidden
			}
			accepted, err := tx.CountApplications(ctx, domain.ApplicationAccepted)
			if err != nil {
				return err
			}
			from = c.Status
			if err = c.Reopen(accepted, u.nowFn(), u.policy.ReopenWindow); err != nil {
				return err
			}
			campaign = *c
			return tx.UpdateCampaign(ctx, c)
		})
	})
	if err != nil {
		return nil, err
	}
	u.out.statusChanged(ctx, campaign, from)
	return &campaign, nil
}

// Payouts returns the ledger entries of a campaign.
func (u *CampaignUseCase) Payouts(ctx context.Context, actor domain.Actor, id uuid.UUID) ([]domain.PayoutRecord, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsCampaign(actor, c) {
		return nil, domain.ErrForbidden
	}
	return u.repo.ListPayouts(ctx, id)
}

// syncCapacity re-derives the campaign status from the accepted count read
// inside tx and stores it when it changed. It returns the previous status.
func syncCapacity(ctx context.Context, tx port.Tx, c *domain.Campaign, now time.Time) (domain.CampaignStatus, error) {
	from := c.Status
	accepted, err := tx.CountApplications(ctx, domain.ApplicationAccepted)
	if err != nil {
		return from, err
	}
	to := c.StatusForAccepted(accepted)
	if to == from {
		return from, nil
	}
	c.Status = to
	c.UpdatedAt = now
	return from, tx.UpdateCampaign(ctx, c)
}

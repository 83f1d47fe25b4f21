package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	// CampaignActive campaigns are discoverable and accept applications.
	CampaignActive CampaignStatus = "active"
	// CampaignCompleted campaigns have every marketer slot filled.
	CampaignCompleted CampaignStatus = "completed"
	// CampaignHidden campaigns were completed and then lost every accepted
	// marketer. They must be reopened explicitly.
	CampaignHidden CampaignStatus = "hidden"
	// CampaignExhausted campaigns have spent their whole budget. Terminal.
	CampaignExhausted CampaignStatus = "exhausted"
)

// Campaign is a seller-funded offer for marketers.
// RemainingBudget + TotalPayout always equals Budget.
type Campaign struct {
	ID               uuid.UUID
	SellerID         uuid.UUID
	Title            string
	Description      string
	Budget           decimal.Decimal
	RemainingBudget  decimal.Decimal
	TotalPayout      decimal.Decimal
	AllowedMarketers int
	MinFollowerCount int64
	Status           CampaignStatus
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCampaign returns an active campaign with its whole budget remaining.
func NewCampaign(sellerID uuid.UUID, title, description string, budget decimal.Decimal, allowed int, minFollowers int64, now time.Time, lifetime time.Duration) (Campaign, error) {
	if sellerID == uuid.Nil || title == "" || !budget.IsPositive() || allowed < 1 || minFollowers < 0 {
		return Campaign{}, ErrInvalidInput
	}
	return Campaign{
		ID:               uuid.New(),
		SellerID:         sellerID,
		Title:            title,
		Description:      description,
		Budget:           budget,
		RemainingBudget:  budget,
		TotalPayout:      decimal.Zero,
		AllowedMarketers: allowed,
		MinFollowerCount: minFollowers,
		Status:           CampaignActive,
		ExpiresAt:        now.Add(lifetime),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ShareOfBudget is the equal per-marketer split of the original budget.
func (c Campaign) ShareOfBudget() decimal.Decimal {
	return c.Budget.Div(decimal.NewFromInt(int64(c.AllowedMarketers)))
}

// Payable reports whether the payout sweep should look at the campaign.
func (c Campaign) Payable() bool {
	if !c.RemainingBudget.IsPositive() {
		return false
	}
	return c.Status == CampaignActive || c.Status == CampaignCompleted
}

// Spent reports whether the remaining budget is too small to pay each of
// inScope marketers the smallest amount a payout is truncated to. What is
// left below that stays in the budget.
func (c Campaign) Spent(inScope int, places int32) bool {
	unit := decimal.New(1, -places)
	return c.RemainingBudget.LessThan(unit.Mul(decimal.NewFromInt(int64(max(inScope, 1)))))
}

// StatusForAccepted derives the capacity status from the authoritative
// accepted count. Exhausted campaigns keep their status.
func (c Campaign) StatusForAccepted(accepted int) CampaignStatus {
	switch {
	case c.Status == CampaignExhausted:
		return c.Status
	case accepted >= c.AllowedMarketers:
		return CampaignCompleted
	case c.Status == CampaignCompleted && accepted == 0:
		return CampaignHidden
	case (c.Status == CampaignCompleted || c.Status == CampaignHidden) && accepted > 0:
		return CampaignActive
	default:
		return c.Status
	}
}

// Reopen makes a hidden campaign discoverable again.
func (c *Campaign) Reopen(accepted int, now time.Time, window time.Duration) error {
	if c.Status != CampaignHidden {
		return ErrInvalidTransition
	}
	if accepted >= c.AllowedMarketers {
		return ErrCapacityFull
	}
	c.Status = CampaignActive
	c.ExpiresAt = now.Add(window)
	c.UpdatedAt = now
	return nil
}

// Spend moves amount from the remaining budget to the total payout.
func (c *Campaign) Spend(amount decimal.Decimal, now time.Time) {
	c.RemainingBudget = c.RemainingBudget.Sub(amount)
	c.TotalPayout = c.TotalPayout.Add(amount)
	c.UpdatedAt = now
}

// BudgetLow reports whether total payout reached ratio of the budget.
func (c Campaign) BudgetLow(ratio decimal.Decimal) bool {
	return c.TotalPayout.GreaterThanOrEqual(c.Budget.Mul(ratio))
}

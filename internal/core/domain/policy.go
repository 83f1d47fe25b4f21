package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Tier is a follower bracket with its engagement projection and pay rates.
// A marketer belongs to the first tier whose MaxFollowers is >= their
// follower count; a zero MaxFollowers means unbounded.
type Tier struct {
	Name             string          `yaml:"name"`
	MaxFollowers     int64           `yaml:"max_followers"`
	ViewsPerMarketer int64           `yaml:"views_per_marketer"`
	LikesPerMarketer int64           `yaml:"likes_per_marketer"`
	RateView         decimal.Decimal `yaml:"rate_view"`
	RateLike         decimal.Decimal `yaml:"rate_like"`
}

// UnitCost is the price of one marketer's projected engagement in this tier.
func (t Tier) UnitCost() decimal.Decimal {
	views := decimal.NewFromInt(t.ViewsPerMarketer).Mul(t.RateView)
	likes := decimal.NewFromInt(t.LikesPerMarketer).Mul(t.RateLike)
	return views.Add(likes)
}

// PlanThreshold labels budgets at or above MinBudget.
type PlanThreshold struct {
	Name      string          `yaml:"name"`
	MinBudget decimal.Decimal `yaml:"min_budget"`
}

// Policy holds every tunable constant of the marketplace. The engagement
// tiers and the plan thresholds use different cut points on purpose.
type Policy struct {
	Tiers []Tier          `yaml:"tiers"`
	Plans []PlanThreshold `yaml:"plans"`

	MinimumDepositRatio decimal.Decimal `yaml:"minimum_deposit_ratio"`
	// AbortPenaltyRatio is charged on the campaign budget for every abort
	// once the seller has used FreeAborts.
	AbortPenaltyRatio decimal.Decimal `yaml:"abort_penalty_ratio"`
	FreeAborts        int             `yaml:"free_aborts"`
	LowBudgetRatio    decimal.Decimal `yaml:"low_budget_ratio"`
	// ReopenWindow is also the lifetime of a newly created campaign.
	ReopenWindow    time.Duration `yaml:"reopen_window"`
	ApplicationCost int           `yaml:"application_cost"`
	// PayoutPlaces is the number of decimal places payouts are truncated to.
	PayoutPlaces int32 `yaml:"payout_places"`
}

// DefaultPolicy returns the production rate card.
func DefaultPolicy() Policy {
	return Policy{
		Tiers: []Tier{
			{Name: "Small", MaxFollowers: 10000, ViewsPerMarketer: 500, LikesPerMarketer: 50,
				RateView: decimal.RequireFromString("0.001"), RateLike: decimal.RequireFromString("0.05")},
			{Name: "Medium", MaxFollowers: 50000, ViewsPerMarketer: 2500, LikesPerMarketer: 250,
				RateView: decimal.RequireFromString("0.0015"), RateLike: decimal.RequireFromString("0.075")},
			{Name: "Large", MaxFollowers: 0, ViewsPerMarketer: 10000, LikesPerMarketer: 1000,
				RateView: decimal.RequireFromString("0.002"), RateLike: decimal.RequireFromString("0.10")},
		},
		Plans: []PlanThreshold{
			{Name: "Small", MinBudget: decimal.Zero},
			{Name: "Medium", MinBudget: decimal.NewFromInt(2000)},
			{Name: "Large", MinBudget: decimal.NewFromInt(5000)},
		},
		MinimumDepositRatio: decimal.RequireFromString("0.5"),
		AbortPenaltyRatio:   decimal.RequireFromString("0.10"),
		FreeAborts:          1,
		LowBudgetRatio:      decimal.RequireFromString("0.9"),
		ReopenWindow:        24 * time.Hour,
		ApplicationCost:     1,
		PayoutPlaces:        2,
	}
}

// Validate checks the policy is usable and sorts its tables.
func (p *Policy) Validate() error {
	if len(p.Tiers) == 0 {
		return fmt.Errorf("policy: no tiers: %w", ErrInvalidInput)
	}
	if len(p.Plans) == 0 {
		return fmt.Errorf("policy: no plans: %w", ErrInvalidInput)
	}
	sort.SliceStable(p.Tiers, func(i, j int) bool {
		a, b := p.Tiers[i].MaxFollowers, p.Tiers[j].MaxFollowers
		if a == 0 || b == 0 {
			return b == 0 && a != 0
		}
		return a < b
	})
	for i, t := range p.Tiers {
		if t.MaxFollowers == 0 && i != len(p.Tiers)-1 {
			return fmt.Errorf("policy: only the last tier may be unbounded: %w", ErrInvalidInput)
		}
		if t.RateView.IsNegative() || t.RateLike.IsNegative() {
			return fmt.Errorf("policy: tier %s has a negative rate: %w", t.Name, ErrInvalidInput)
		}
		if !t.UnitCost().IsPositive() {
			return fmt.Errorf("policy: tier %s has no unit cost: %w", t.Name, ErrInvalidInput)
		}
	}
	sort.SliceStable(p.Plans, func(i, j int) bool {
		return p.Plans[i].MinBudget.LessThan(p.Plans[j].MinBudget)
	})
	if p.ReopenWindow <= 0 {
		return fmt.Errorf("policy: reopen window must be positive: %w", ErrInvalidInput)
	}
	if p.ApplicationCost < 0 || p.FreeAborts < 0 || p.PayoutPlaces < 0 {
		return fmt.Errorf("policy: negative counter: %w", ErrInvalidInput)
	}
	return nil
}

// TierFor returns the tier matching a follower count.
func (p Policy) TierFor(followers int64) Tier {
	for _, t := range p.Tiers {
		if t.MaxFollowers == 0 || followers <= t.MaxFollowers {
			return t
		}
	}
	return p.Tiers[len(p.Tiers)-1]
}

// PlanFor returns the plan label for a budget.
func (p Policy) PlanFor(budget decimal.Decimal) string {
	plan := p.Plans[0].Name
	for _, t := range p.Plans {
		if budget.GreaterThanOrEqual(t.MinBudget) {
			plan = t.Name
		}
	}
	return plan
}

package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// Estimator projects how much engagement a campaign budget can buy. It has
// no state beyond the policy and is safe for concurrent use.
type Estimator struct {
	policy domain.Policy
}

// NewEstimator creates an estimator for the given rate card.
func NewEstimator(policy domain.Policy) *Estimator {
	return &Estimator{policy: policy}
}

// Estimate walks the follower tiers from smallest to largest, filling the
// marketer slots each tier's average payout affords. The plan label comes
// from the budget thresholds alone.
func (e *Estimator) Estimate(budget decimal.Decimal, allowedMarketers int) (port.Estimate, error) {
	if allowedMarketers < 1 || !budget.IsPositive() {
		return port.Estimate{}, domain.ErrInvalidInput
	}

	avg := budget.Div(decimal.NewFromInt(int64(allowedMarketers)))
	remaining := int64(allowedMarketers)
	var views, likes int64
	for _, tier := range e.policy.Tiers {
		slots := avg.Div(tier.UnitCost()).Floor().IntPart()
		take := min(slots, remaining)
		views += take * tier.ViewsPerMarketer
		likes += take * tier.LikesPerMarketer
		remaining -= take
		if remaining == 0 {
			break
		}
	}

	plan := e.policy.PlanFor(budget)
	return port.Estimate{
		Plan:               plan,
		EstimatedViews:     views,
		EstimatedLikes:     likes,
		MinimumDeposit:     budget.Mul(e.policy.MinimumDepositRatio),
		RecommendedDeposit: budget,
		MarketerAllocation: fmt.Sprintf("Allocating %d marketers in %s tier", allowedMarketers, plan),
	}, nil
}

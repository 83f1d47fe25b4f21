package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyIsValid(t *testing.T) {
	p := DefaultPolicy()
	require.NoError(t, p.Validate())
	assert.True(t, decimal.NewFromInt(3).Equal(p.Tiers[0].UnitCost()))
}

func TestTierFor(t *testing.T) {
	p := DefaultPolicy()
	cases := map[int64]string{
		0:       "Small",
		10000:   "Small",
		10001:   "Medium",
		50000:   "Medium",
		50001:   "Large",
		5000000: "Large",
	}
	for followers, want := range cases {
		assert.Equal(t, want, p.TierFor(followers).Name, "%d followers", followers)
	}
}

func TestValidateSortsTables(t *testing.T) {
	p := DefaultPolicy()
	p.Tiers[0], p.Tiers[2] = p.Tiers[2], p.Tiers[0]
	p.Plans[0], p.Plans[2] = p.Plans[2], p.Plans[0]

	require.NoError(t, p.Validate())
	assert.Equal(t, "Small", p.Tiers[0].Name)
	assert.Equal(t, "Large", p.Tiers[2].Name)
	assert.Equal(t, "Small", p.Plans[0].Name)
	assert.Equal(t, "Medium", p.PlanFor(decimal.NewFromInt(2000)))
}

func TestValidateRejectsBrokenPolicies(t *testing.T) {
	cases := map[string]func(p *Policy){
		"no tiers":            func(p *Policy) { p.Tiers = nil },
		"no plans":            func(p *Policy) { p.Plans = nil },
		"two unbounded tiers": func(p *Policy) { p.Tiers[1].MaxFollowers = 0 },
		"negative rate":       func(p *Policy) { p.Tiers[0].RateView = decimal.NewFromInt(-1) },
		"free tier": func(p *Policy) {
			p.Tiers[0].RateView = decimal.Zero
			p.Tiers[0].RateLike = decimal.Zero
		},
		"no reopen window": func(p *Policy) { p.ReopenWindow = 0 },
		"negative cost":    func(p *Policy) { p.ApplicationCost = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultPolicy()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
		})
	}
}

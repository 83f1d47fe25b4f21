package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-ads/internal/core/domain"
)

func TestEstimatePlanIsIndependentOfTierLoop(t *testing.T) {
	est := NewEstimator(domain.DefaultPolicy())

	got, err := est.Estimate(decimal.NewFromInt(2000), 4)
	require.NoError(t, err)

	// 500 per head buys 166 small-tier slots, so all four slots are small.
	assert.Equal(t, "Medium", got.Plan)
	assert.Equal(t, int64(4*500), got.EstimatedViews)
	assert.Equal(t, int64(4*50), got.EstimatedLikes)
	assert.True(t, decimal.NewFromInt(1000).Equal(got.MinimumDeposit))
	assert.True(t, decimal.NewFromInt(2000).Equal(got.RecommendedDeposit))
	assert.Equal(t, "Allocating 4 marketers in Medium tier", got.MarketerAllocation)
}

func TestEstimatePlanThresholds(t *testing.T) {
	est := NewEstimator(domain.DefaultPolicy())
	cases := map[int64]string{
		1:     "Small",
		1999:  "Small",
		2000:  "Medium",
		4999:  "Medium",
		5000:  "Large",
		90000: "Large",
	}
	for budget, plan := range cases {
		got, err := est.Estimate(decimal.NewFromInt(budget), 1)
		require.NoError(t, err)
		assert.Equal(t, plan, got.Plan, "budget %d", budget)
	}
}

func TestEstimateSpillsIntoLargerTiers(t *testing.T) {
	est := NewEstimator(domain.DefaultPolicy())

	// avg 10: small unit cost 3 affords 3 slots, medium (22.5) and large
	// (120) afford none. Seven slots stay unallocated.
	got, err := est.Estimate(decimal.NewFromInt(100), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3*500), got.EstimatedViews)
	assert.Equal(t, int64(3*50), got.EstimatedLikes)
	assert.Equal(t, "Small", got.Plan)

	// avg 150: small affords 50 slots which is more than the 2 requested.
	got, err = est.Estimate(decimal.NewFromInt(300), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.EstimatedViews)
}

func TestEstimateRejectsInvalidInput(t *testing.T) {
	est := NewEstimator(domain.DefaultPolicy())

	_, err := est.Estimate(decimal.NewFromInt(1000), 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	_, err = est.Estimate(decimal.Zero, 3)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

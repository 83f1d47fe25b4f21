package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cycleNow = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func testCampaign(t *testing.T, budget int64, allowed int) Campaign {
	t.Helper()
	c, err := NewCampaign(uuid.New(), "c", "", decimal.NewFromInt(budget), allowed, 0, cycleNow, time.Hour)
	require.NoError(t, err)
	return c
}

func submitted(views, likes int64) Application {
	a := NewApplication(uuid.New(), uuid.New(), cycleNow)
	a.Status = ApplicationAccepted
	a.Submission = &Submission{Stats: SnapshotStats{Views: views, Likes: likes, IsActive: true}}
	return a
}

func TestComputeCycleSingleEarnerTakesShare(t *testing.T) {
	c := testCampaign(t, 1000, 2)
	a := submitted(1000, 0)
	b := submitted(0, 0)

	got := ComputeCycle(c, []CycleEntry{
		{Application: a, FollowerCount: 10000},
		{Application: b, FollowerCount: 10000},
	}, DefaultPolicy())

	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ApplicationID)
	assert.True(t, decimal.NewFromInt(1).Equal(got[0].DailyPayout))
	assert.True(t, decimal.NewFromInt(1).Equal(got[0].Proportion))
	assert.True(t, decimal.NewFromInt(500).Equal(got[0].Payout), "got %s", got[0].Payout)
	assert.Equal(t, int64(0), got[0].FromViews)
	assert.Equal(t, int64(1000), got[0].ToViews)
}

func TestComputeCycleCapsAtRemainingPerHead(t *testing.T) {
	c := testCampaign(t, 1000, 2)
	c.Spend(decimal.NewFromInt(900), cycleNow)
	a := submitted(1000, 0)
	b := submitted(0, 0)

	got := ComputeCycle(c, []CycleEntry{{Application: a}, {Application: b}}, DefaultPolicy())

	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(got[0].Payout), "got %s", got[0].Payout)
}

func TestComputeCycleUsesFollowerTierRates(t *testing.T) {
	c := testCampaign(t, 100000, 2)
	small := submitted(1000, 0)
	large := submitted(1000, 0)

	got := ComputeCycle(c, []CycleEntry{
		{Application: small, FollowerCount: 500},
		{Application: large, FollowerCount: 60000},
	}, DefaultPolicy())

	require.Len(t, got, 2)
	assert.True(t, decimal.RequireFromString("1").Equal(got[0].DailyPayout))
	assert.True(t, decimal.RequireFromString("2").Equal(got[1].DailyPayout))
	assert.True(t, got[1].Payout.GreaterThan(got[0].Payout))
}

func TestComputeCycleNothingToPay(t *testing.T) {
	c := testCampaign(t, 1000, 2)
	a := submitted(500, 20)
	a.MarkProcessed(500, 20, decimal.NewFromInt(1), cycleNow)

	assert.Empty(t, ComputeCycle(c, []CycleEntry{{Application: a}}, DefaultPolicy()))
	assert.Empty(t, ComputeCycle(c, nil, DefaultPolicy()))

	c.Spend(c.RemainingBudget, cycleNow)
	assert.Empty(t, ComputeCycle(c, []CycleEntry{{Application: submitted(10, 1)}}, DefaultPolicy()))
}

func TestComputeCycleTruncatesToCents(t *testing.T) {
	c := testCampaign(t, 10, 3)
	a := submitted(1, 0)

	got := ComputeCycle(c, []CycleEntry{{Application: a}}, DefaultPolicy())

	require.Len(t, got, 1)
	// The share is 10/3.
	assert.Equal(t, "3.33", got[0].Payout.StringFixed(2))
	assert.True(t, got[0].Payout.Equal(got[0].Payout.Truncate(2)))
}

func TestComputeCycleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	policy := DefaultPolicy()

	entriesOf := func(views, likes, followers []int64) []CycleEntry {
		n := min(len(views), len(likes), len(followers))
		out := make([]CycleEntry, 0, n)
		for i := range n {
			out = append(out, CycleEntry{Application: submitted(views[i], likes[i]), FollowerCount: followers[i]})
		}
		return out
	}
	campaignOf := func(budget int64, allowed int, spentPct int64) Campaign {
		c, _ := NewCampaign(uuid.New(), "p", "", decimal.NewFromInt(budget), allowed, 0, cycleNow, time.Hour)
		c.Spend(c.Budget.Mul(decimal.NewFromInt(spentPct)).Div(decimal.NewFromInt(100)), cycleNow)
		return c
	}

	properties.Property("payouts are positive and never exceed the remaining budget", prop.ForAll(
		func(budget int64, allowed int, spentPct int64, views, likes, followers []int64) bool {
			c := campaignOf(budget, allowed, spentPct)
			entries := entriesOf(views, likes, followers)
			total := decimal.Zero
			for _, a := range ComputeCycle(c, entries, policy) {
				if !a.Payout.IsPositive() {
					return false
				}
				total = total.Add(a.Payout)
			}
			return total.LessThanOrEqual(c.RemainingBudget)
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 20),
		gen.Int64Range(0, 99),
		gen.SliceOf(gen.Int64Range(0, 5_000_000)),
		gen.SliceOf(gen.Int64Range(0, 200_000)),
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
	))

	properties.Property("no payout exceeds the per-head cap", prop.ForAll(
		func(budget int64, allowed int, views, likes, followers []int64) bool {
			c := campaignOf(budget, allowed, 0)
			entries := entriesOf(views, likes, followers)
			if len(entries) == 0 {
				return true
			}
			limit := c.RemainingBudget.Div(decimal.NewFromInt(int64(len(entries))))
			for _, a := range ComputeCycle(c, entries, policy) {
				if a.Payout.GreaterThan(limit) {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 20),
		gen.SliceOf(gen.Int64Range(0, 5_000_000)),
		gen.SliceOf(gen.Int64Range(0, 200_000)),
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
	))

	properties.Property("processed mark never moves backwards", prop.ForAll(
		func(paidViews, paidLikes, seenViews, seenLikes int64) bool {
			a := submitted(seenViews, seenLikes)
			a.MarkProcessed(paidViews, paidLikes, decimal.Zero, cycleNow)
			before := a.LastProcessed
			for _, alloc := range ComputeCycle(campaignOf(1000, 2, 0), []CycleEntry{{Application: a}}, policy) {
				a.MarkProcessed(alloc.ToViews, alloc.ToLikes, alloc.Payout, cycleNow)
			}
			return a.LastProcessed.Views >= before.Views && a.LastProcessed.Likes >= before.Likes
		},
		gen.Int64Range(0, 100_000),
		gen.Int64Range(0, 10_000),
		gen.Int64Range(0, 100_000),
		gen.Int64Range(0, 10_000),
	))

	properties.TestingRun(t)
}

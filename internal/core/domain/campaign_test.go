package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaignValidation(t *testing.T) {
	seller := uuid.New()
	cases := []struct {
		name    string
		seller  uuid.UUID
		title   string
		budget  int64
		allowed int
		min     int64
	}{
		{"no seller", uuid.Nil, "t", 10, 1, 0},
		{"no title", seller, "", 10, 1, 0},
		{"zero budget", seller, "t", 0, 1, 0},
		{"no slots", seller, "t", 10, 0, 0},
		{"negative floor", seller, "t", 10, 1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCampaign(tc.seller, tc.title, "", decimal.NewFromInt(tc.budget), tc.allowed, tc.min, cycleNow, time.Hour)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestStatusForAccepted(t *testing.T) {
	cases := []struct {
		from     CampaignStatus
		accepted int
		want     CampaignStatus
	}{
		{CampaignActive, 0, CampaignActive},
		{CampaignActive, 2, CampaignActive},
		{CampaignActive, 3, CampaignCompleted},
		{CampaignCompleted, 3, CampaignCompleted},
		{CampaignCompleted, 2, CampaignActive},
		{CampaignCompleted, 0, CampaignHidden},
		{CampaignHidden, 0, CampaignHidden},
		{CampaignHidden, 1, CampaignActive},
		{CampaignExhausted, 0, CampaignExhausted},
		{CampaignExhausted, 3, CampaignExhausted},
	}
	for _, tc := range cases {
		c := Campaign{AllowedMarketers: 3, Status: tc.from}
		assert.Equal(t, tc.want, c.StatusForAccepted(tc.accepted), "%s with %d accepted", tc.from, tc.accepted)
	}
}

func TestReopen(t *testing.T) {
	c := testCampaign(t, 1000, 2)
	c.Status = CampaignHidden

	err := c.Reopen(2, cycleNow, 24*time.Hour)
	assert.ErrorIs(t, err, ErrCapacityFull)
	assert.Equal(t, CampaignHidden, c.Status)

	later := cycleNow.Add(48 * time.Hour)
	require.NoError(t, c.Reopen(1, later, 24*time.Hour))
	assert.Equal(t, CampaignActive, c.Status)
	assert.Equal(t, later.Add(24*time.Hour), c.ExpiresAt)

	assert.ErrorIs(t, c.Reopen(0, later, time.Hour), ErrInvalidTransition)
}

func TestCampaignPayable(t *testing.T) {
	c := testCampaign(t, 100, 1)
	assert.True(t, c.Payable())

	c.Status = CampaignCompleted
	assert.True(t, c.Payable())

	c.Status = CampaignHidden
	assert.False(t, c.Payable())

	c.Status = CampaignActive
	c.Spend(decimal.NewFromInt(100), cycleNow)
	assert.False(t, c.Payable())
	assert.True(t, c.TotalPayout.Equal(c.Budget))
}

func TestBudgetLow(t *testing.T) {
	c := testCampaign(t, 1000, 1)
	ratio := DefaultPolicy().LowBudgetRatio

	c.Spend(decimal.RequireFromString("899.99"), cycleNow)
	assert.False(t, c.BudgetLow(ratio))

	c.Spend(decimal.RequireFromString("0.01"), cycleNow)
	assert.True(t, c.BudgetLow(ratio))
}

func TestCampaignSpent(t *testing.T) {
	cases := []struct {
		remaining string
		inScope   int
		want      bool
	}{
		{"0", 3, true},
		{"0.01", 3, true},
		{"0.02", 3, true},
		{"0.03", 3, false},
		{"0.009", 0, true},
		{"0.01", 0, false},
		{"500", 2, false},
	}
	for _, tc := range cases {
		c := Campaign{RemainingBudget: decimal.RequireFromString(tc.remaining)}
		assert.Equal(t, tc.want, c.Spent(tc.inScope, 2), "%s over %d", tc.remaining, tc.inScope)
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutRecord is an append-only ledger entry. (ApplicationID, CycleID) is
// unique so a retried cycle cannot pay twice.
type PayoutRecord struct {
	ID                uuid.UUID
	CycleID           uuid.UUID
	MarketerID        uuid.UUID
	CampaignID        uuid.UUID
	ApplicationID     uuid.UUID
	Amount            decimal.Decimal
	PerformanceFactor decimal.Decimal
	CampaignBudget    decimal.Decimal
	CreatedAt         time.Time
}

// CycleEntry is an in-scope application together with its marketer's
// follower count, which selects the pay rates.
type CycleEntry struct {
	Application   Application
	FollowerCount int64
}

// Allocation is the payout computed for one application in one cycle.
// FromViews/FromLikes is the high-water mark the computation started at,
// ToViews/ToLikes the one it advances to.
type Allocation struct {
	ApplicationID uuid.UUID
	MarketerID    uuid.UUID
	DailyPayout   decimal.Decimal
	Proportion    decimal.Decimal
	Payout        decimal.Decimal
	FromViews     int64
	FromLikes     int64
	ToViews       int64
	ToLikes       int64
}

// ComputeCycle apportions one payout cycle of a campaign. Every entry is in
// scope for the per-head cap, even when it has nothing new to be paid for.
// The sum of the returned payouts never exceeds c.RemainingBudget.
func ComputeCycle(c Campaign, entries []CycleEntry, p Policy) []Allocation {
	if len(entries) == 0 || !c.RemainingBudget.IsPositive() {
		return nil
	}

	daily := make([]decimal.Decimal, len(entries))
	total := decimal.Zero
	for i, e := range entries {
		views, likes := e.Application.Delta()
		tier := p.TierFor(e.FollowerCount)
		daily[i] = decimal.NewFromInt(views).Mul(tier.RateView).
			Add(decimal.NewFromInt(likes).Mul(tier.RateLike))
		total = total.Add(daily[i])
	}
	if !total.IsPositive() {
		return nil
	}

	share := c.ShareOfBudget()
	perHead := c.RemainingBudget.Div(decimal.NewFromInt(int64(len(entries))))

	var out []Allocation
	for i, e := range entries {
		views, likes := e.Application.Delta()
		if views == 0 && likes == 0 {
			continue
		}
		proportion := daily[i].Div(total)
		payout := daily[i].Add(proportion.Mul(share.Sub(daily[i])))
		payout = decimal.Min(payout, perHead).Truncate(p.PayoutPlaces)
		if !payout.IsPositive() {
			continue
		}
		app := e.Application
		out = append(out, Allocation{
			ApplicationID: app.ID,
			MarketerID:    app.MarketerID,
			DailyPayout:   daily[i],
			Proportion:    proportion,
			Payout:        payout,
			FromViews:     app.LastProcessed.Views,
			FromLikes:     app.LastProcessed.Likes,
			ToViews:       app.LastProcessed.Views + views,
			ToLikes:       app.LastProcessed.Likes + likes,
		})
	}
	return out
}

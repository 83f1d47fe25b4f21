package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// PayoutUseCase runs the payout sweep. A sweep keeps no state between
// runs: every cycle re-reads campaigns, applications and the engagement
// source, and all coordination goes through the repository.
type PayoutUseCase struct {
	repo    port.Repository
	source  port.EngagementSource
	policy  domain.Policy
	out     emitter
	logger  *slog.Logger
	workers int
	nowFn   func() time.Time
}

// NewPayoutUseCase creates the payout engine. workers bounds how many
// campaigns are processed in parallel.
func NewPayoutUseCase(repo port.Repository, source port.EngagementSource, events port.EventPublisher, policy domain.Policy, workers int, logger *slog.Logger) *PayoutUseCase {
	if workers < 1 {
		workers = 1
	}
	return &PayoutUseCase{
		repo:    repo,
		source:  source,
		policy:  policy,
		out:     emitter{events: events, logger: logger},
		logger:  logger,
		workers: workers,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
}

// campaignResult is what one campaign contributed to a sweep.
type campaignResult struct {
	payouts int
	paid    decimal.Decimal
	errors  int
}

// Sweep pays every payable campaign for the engagement gained since the
// previous sweep. Failures are contained to the campaign or application
// they happen in; the sweep always makes a best-effort pass over all
// campaigns. Only listing the campaigns can fail the sweep itself.
func (u *PayoutUseCase) Sweep(ctx context.Context) (*port.SweepReport, error) {
	ids, err := u.repo.ListPayableCampaignIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payable campaigns: %w", err)
	}
	report := &port.SweepReport{
		CycleID:          uuid.New(),
		CampaignsScanned: len(ids),
		TotalPaid:        decimal.Zero,
	}
	logger := u.logger.With(slog.String("cycle_id", report.CycleID.String()))
	logger.Info("payout sweep started", slog.Int("campaigns", len(ids)))

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(u.workers)
	for _, id := range ids {
		g.Go(func() error {
			res, err := u.sweepCampaignSafe(ctx, report.CycleID, id, logger)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Errors++
				logger.Error("campaign payout failed", slog.String("campaign_id", id.String()), slog.Any("error", err))
				return nil
			}
			report.Errors += res.errors
			report.PayoutsCreated += res.payouts
			report.TotalPaid = report.TotalPaid.Add(res.paid)
			if res.payouts > 0 {
				report.CampaignsPaid++
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("payout sweep finished",
		slog.Int("campaigns_paid", report.CampaignsPaid),
		slog.Int("payouts", report.PayoutsCreated),
		slog.String("total_paid", report.TotalPaid.String()),
		slog.Int("errors", report.Errors))
	return report, nil
}

func (u *PayoutUseCase) sweepCampaignSafe(ctx context.Context, cycleID, campaignID uuid.UUID, logger *slog.Logger) (res campaignResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return u.sweepCampaign(ctx, cycleID, campaignID, logger.With(slog.String("campaign_id", campaignID.String())))
}

func (u *PayoutUseCase) sweepCampaign(ctx context.Context, cycleID, campaignID uuid.UUID, logger *slog.Logger) (campaignResult, error) {
	res := campaignResult{paid: decimal.Zero}

	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return res, err
	}
	if !c.Payable() {
		return res, nil
	}
	apps, err := u.repo.ListApplications(ctx, port.ApplicationFilter{CampaignID: &campaignID, Status: domain.ApplicationAccepted})
	if err != nil {
		return res, err
	}

	if c.Spent(len(apps), u.policy.PayoutPlaces) {
		return res, u.settle(ctx, campaignID, logger)
	}

	entries, failed, err := u.refresh(ctx, campaignID, apps, logger)
	res.errors += failed
	if err != nil {
		return res, err
	}
	if len(entries) == 0 {
		return res, nil
	}

	allocations := domain.ComputeCycle(*c, entries, u.policy)
	for _, alloc := range allocations {
		var record *domain.PayoutRecord
		err = withRetry(ctx, func() error {
			record, err = u.apply(ctx, cycleID, campaignID, alloc)
			return err
		})
		if err != nil {
			res.errors++
			logger.Error("apply payout", slog.String("application_id", alloc.ApplicationID.String()), slog.Any("error", err))
			continue
		}
		if record == nil {
			continue
		}
		res.payouts++
		res.paid = res.paid.Add(record.Amount)
		logger.Info("payout credited",
			slog.String("marketer_id", record.MarketerID.String()),
			slog.String("amount", record.Amount.String()),
			slog.String("performance_factor", record.PerformanceFactor.StringFixed(4)))
		u.out.emit(ctx, domain.EventPayoutCredited, record.MarketerID, domain.PayoutCredited{
			PayoutID:          record.ID,
			CycleID:           record.CycleID,
			CampaignID:        record.CampaignID,
			ApplicationID:     record.ApplicationID,
			MarketerID:        record.MarketerID,
			Amount:            record.Amount,
			PerformanceFactor: record.PerformanceFactor,
			CreatedAt:         record.CreatedAt,
		})
	}

	if res.payouts > 0 {
		if err = u.settle(ctx, campaignID, logger); err != nil {
			return res, err
		}
	}
	return res, nil
}

// refresh reads fresh engagement for every accepted application with an
// active submission and stores it. Applications the source could not
// answer for are left out of this cycle; videos that disappeared are
// deactivated. It returns the in-scope entries and the number of skipped
// applications.
func (u *PayoutUseCase) refresh(ctx context.Context, campaignID uuid.UUID, apps []domain.Application, logger *slog.Logger) ([]domain.CycleEntry, int, error) {
	fresh := make(map[uuid.UUID]domain.EngagementStats, len(apps))
	gone := make(map[uuid.UUID]bool)
	followers := make(map[uuid.UUID]int64, len(apps))
	failed := 0

	for _, app := range apps {
		if !app.Payable() {
			continue
		}
		stats, err := u.source.FetchStats(ctx, app.Submission.VideoLink)
		switch {
		case errors.Is(err, domain.ErrVideoNotFound):
			logger.Warn("submitted video is gone", slog.String("application_id", app.ID.String()))
			gone[app.ID] = true
			continue
		case err != nil:
			failed++
			logger.Warn("engagement source unavailable, skipping application this cycle",
				slog.String("application_id", app.ID.String()), slog.Any("error", err))
			continue
		}
		marketer, err := u.repo.GetUser(ctx, app.MarketerID)
		if err != nil {
			failed++
			logger.Error("load marketer", slog.String("application_id", app.ID.String()), slog.Any("error", err))
			continue
		}
		fresh[app.ID] = stats
		followers[app.ID] = marketer.FollowerCount
	}
	if len(fresh) == 0 && len(gone) == 0 {
		return nil, failed, nil
	}

	var entries []domain.CycleEntry
	err := withRetry(ctx, func() error {
		entries = entries[:0]
		return u.repo.WithinCampaign(ctx, campaignID, func(ctx context.Context, tx port.Tx) error {
			now := u.nowFn()
			current, err := tx.ListApplications(ctx, domain.ApplicationAccepted)
			if err != nil {
				return err
			}
			for i := range current {
				app := &current[i]
				if !app.Payable() {
					continue
				}
				if gone[app.ID] {
					app.Submission.Stats.IsActive = false
					app.UpdatedAt = now
					if err = tx.UpdateApplication(ctx, app); err != nil {
						return err
					}
					continue
				}
				stats, ok := fresh[app.ID]
				if !ok {
					continue
				}
				app.Submission.Stats.Merge(stats, now)
				app.UpdatedAt = now
				if err = tx.UpdateApplication(ctx, app); err != nil {
					return err
				}
				entries = append(entries, domain.CycleEntry{Application: *app, FollowerCount: followers[app.ID]})
			}
			return nil
		})
	})
	if err != nil {
		return nil, failed, fmt.Errorf("store engagement snapshots: %w", err)
	}
	return entries, failed, nil
}

// apply commits one allocation: the marketer's credit, the ledger entry,
// the processed high-water mark and the campaign budget move together. A
// nil record means the allocation went stale and nothing was written.
func (u *PayoutUseCase) apply(ctx context.Context, cycleID, campaignID uuid.UUID, alloc domain.Allocation) (*domain.PayoutRecord, error) {
	var record *domain.PayoutRecord
	err := u.repo.WithinCampaign(ctx, campaignID, func(ctx context.Context, tx port.Tx) error {
		record = nil
		c, err := tx.Campaign(ctx)
		if err != nil {
			return err
		}
		if !c.Payable() {
			return nil
		}
		app, err := tx.GetApplication(ctx, alloc.ApplicationID)
		if err != nil {
			return err
		}
		if app.Status != domain.ApplicationAccepted ||
			app.LastProcessed.Views != alloc.FromViews ||
			app.LastProcessed.Likes != alloc.FromLikes {
			return nil
		}
		amount := decimal.Min(alloc.Payout, c.RemainingBudget)
		if !amount.IsPositive() {
			return nil
		}

		now := u.nowFn()
		marketer, err := tx.GetUser(ctx, app.MarketerID)
		if err != nil {
			return err
		}
		marketer.Balance = marketer.Balance.Add(amount)
		marketer.UpdatedAt = now
		if err = tx.UpdateUser(ctx, marketer); err != nil {
			return err
		}
		rec := domain.PayoutRecord{
			ID:                uuid.New(),
			CycleID:           cycleID,
			MarketerID:        app.MarketerID,
			CampaignID:        c.ID,
			ApplicationID:     app.ID,
			Amount:            amount,
			PerformanceFactor: alloc.Proportion,
			CampaignBudget:    c.Budget,
			CreatedAt:         now,
		}
		if err = tx.InsertPayout(ctx, &rec); err != nil {
			return err
		}
		app.MarkProcessed(alloc.ToViews, alloc.ToLikes, amount, now)
		if err = tx.UpdateApplication(ctx, app); err != nil {
			return err
		}
		c.Spend(amount, now)
		if err = tx.UpdateCampaign(ctx, c); err != nil {
			return err
		}
		record = &rec
		return nil
	})
	return record, err
}

// settle closes a campaign whose budget is spent and raises the low budget
// warning. A remainder too small to give every accepted marketer a cent
// counts as spent.
func (u *PayoutUseCase) settle(ctx context.Context, campaignID uuid.UUID, logger *slog.Logger) error {
	var (
		campaign domain.Campaign
		from     domain.CampaignStatus
	)
	err := withRetry(ctx, func() error {
		return u.repo.WithinCampaign(ctx, campaignID, func(ctx context.Context, tx port.Tx) error {
			c, err := tx.Campaign(ctx)
			if err != nil {
				return err
			}
			from = c.Status
			campaign = *c
			if c.Status == domain.CampaignExhausted {
				return nil
			}
			accepted, err := tx.ListApplications(ctx, domain.ApplicationAccepted)
			if err != nil {
				return err
			}
			if !c.Spent(len(accepted), u.policy.PayoutPlaces) {
				return nil
			}
			now := u.nowFn()
			for i := range accepted {
				if err = accepted[i].Transition(domain.ApplicationCompleted, now); err != nil {
					return err
				}
				if err = tx.UpdateApplication(ctx, &accepted[i]); err != nil {
					return err
				}
			}
			c.Status = domain.CampaignExhausted
			c.UpdatedAt = now
			campaign = *c
			return tx.UpdateCampaign(ctx, c)
		})
	})
	if err != nil {
		return fmt.Errorf("settle campaign: %w", err)
	}

	u.out.statusChanged(ctx, campaign, from)
	if campaign.BudgetLow(u.policy.LowBudgetRatio) {
		logger.Warn("campaign budget nearly exhausted",
			slog.String("budget", campaign.Budget.String()),
			slog.String("total_payout", campaign.TotalPayout.String()))
		u.out.emit(ctx, domain.EventCampaignBudgetLow, campaign.ID, domain.BudgetLow{
			CampaignID:      campaign.ID,
			Budget:          campaign.Budget,
			TotalPayout:     campaign.TotalPayout,
			RemainingBudget: campaign.RemainingBudget,
		})
	}
	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// ApplicationUseCase drives a marketer's application through its states.
// Every transition that touches capacity runs inside the campaign's unit of
// work so two sellers' accepts can never overfill a campaign.
type ApplicationUseCase struct {
	repo     port.Repository
	source   port.EngagementSource
	verifier port.IdentityVerifier
	policy   domain.Policy
	out      emitter
	logger   *slog.Logger
	nowFn    func() time.Time
}

// NewApplicationUseCase creates the application use case.
func NewApplicationUseCase(
	repo port.Repository,
	source port.EngagementSource,
	verifier port.IdentityVerifier,
	notifier port.Notifier,
	events port.EventPublisher,
	policy domain.Policy,
	logger *slog.Logger,
) *ApplicationUseCase {
	return &ApplicationUseCase{
		repo:     repo,
		source:   source,
		verifier: verifier,
		policy:   policy,
		out:      emitter{events: events, notifier: notifier, logger: logger},
		logger:   logger,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

// Apply creates a pending application and charges the marketer's
// connection coins in the same unit of work.
func (u *ApplicationUseCase) Apply(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*port.ApplyResult, error) {
	if actor.Role != domain.RoleMarketer {
		return nil, domain.ErrForbidden
	}
	var res port.ApplyResult
	err := withRetry(ctx, func() error {
		return u.repo.WithinCampaign(ctx, campaignID, func(ctx context.Context, tx port.Tx) error {
			c, err := tx.Campaign(ctx)
			if err != nil {
				return err
			}
			marketer, err := tx.GetUser(ctx, actor.UserID)
			if err != nil {
				return err
			}
			if marketer.FollowerCount < c.MinFollowerCount {
				return domain.ErrNotEligible
			}
			if c.Status != domain.CampaignActive {
				return domain.ErrCampaignInactive
			}
			if _, err = tx.FindApplication(ctx, marketer.ID); err == nil {
				return domain.ErrDuplicateApplication
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			accepted, err := tx.CountApplications(ctx, domain.ApplicationAccepted)
			if err != nil {
				return err
			}
			if accepted >= c.AllowedMarketers {
				return domain.ErrCampaignFull
			}
			if u.policy.ApplicationCost > 0 && marketer.ConnectionCoins < u.policy.ApplicationCost {
				return domain.ErrInsufficientCredits
			}
			prior, err := tx.CountApplications(ctx, "")
			if err != nil {
				return err
			}

			now := u.nowFn()
			app := domain.NewApplication(c.ID, marketer.ID, now)
			if err = tx.InsertApplication(ctx, &app); err != nil {
				return err
			}
			marketer.ConnectionCoins -= u.policy.ApplicationCost
			marketer.UpdatedAt = now
			if err = tx.UpdateUser(ctx, marketer); err != nil {
				return err
			}
			res = port.ApplyResult{Application: app, PriorApplicant: prior}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Accept admits a pending application if the campaign has a free slot.
// The marketer is notified on a best-effort basis.
func (u *ApplicationUseCase) Accept(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*domain.Application, error) {
	var (
		campaign domain.Campaign
		from     domain.CampaignStatus
	)
	app, err := u.sellerTransition(ctx, actor, applicationID, func(ctx context.Context, tx port.Tx, c *domain.Campaign, app *domain.Application, now time.Time) error {
		if c.Status == domain.CampaignExhausted {
			return domain.ErrCampaignInactive
		}
		if app.Status != domain.ApplicationPending {
			return domain.ErrInvalidTransition
		}
		accepted, err := tx.CountApplications(ctx, domain.ApplicationAccepted)
		if err != nil {
			return err
		}
		if accepted >= c.AllowedMarketers {
			return domain.ErrCampaignFull
		}
		if err = app.Transition(domain.ApplicationAccepted, now); err != nil {
			return err
		}
		if err = tx.UpdateApplication(ctx, app); err != nil {
			return err
		}
		if from, err = syncCapacity(ctx, tx, c, now); err != nil {
			return err
		}
		campaign = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.out.notify(ctx, app.MarketerID, fmt.Sprintf("Your application to %q was accepted. Submit your TikTok video to start earning.", campaign.Title))
	u.out.emit(ctx, domain.EventApplicationAccepted, campaign.ID, domain.ApplicationEvent{
		ApplicationID: app.ID,
		CampaignID:    app.CampaignID,
		MarketerID:    app.MarketerID,
		At:            app.UpdatedAt,
	})
	u.out.statusChanged(ctx, campaign, from)
	return app, nil
}

// Reject declines a pending application.
func (u *ApplicationUseCase) Reject(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*domain.Application, error) {
	return u.sellerTransition(ctx, actor, applicationID, func(ctx context.Context, tx port.Tx, _ *domain.Campaign, app *domain.Application, now time.Time) error {
		if err := app.Transition(domain.ApplicationRejected, now); err != nil {
			return err
		}
		return tx.UpdateApplication(ctx, app)
	})
}

// Abort removes an accepted marketer from the campaign. The seller pays
// the abort penalty and the campaign status follows the freed capacity.
func (u *ApplicationUseCase) Abort(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*port.AbortResult, error) {
	var (
		res  port.AbortResult
		from domain.CampaignStatus
	)
	app, err := u.sellerTransition(ctx, actor, applicationID, func(ctx context.Context, tx port.Tx, c *domain.Campaign, app *domain.Application, now time.Time) error {
		if err := app.Transition(domain.ApplicationAborted, now); err != nil {
			return err
		}
		if err := tx.UpdateApplication(ctx, app); err != nil {
			return err
		}
		seller, err := tx.GetUser(ctx, c.SellerID)
		if err != nil {
			return err
		}
		res.Penalty = seller.AbortPenalty(c.Budget, u.policy, now)
		if err = tx.UpdateUser(ctx, seller); err != nil {
			return err
		}
		if from, err = syncCapacity(ctx, tx, c, now); err != nil {
			return err
		}
		res.Campaign = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Application = *app

	if res.Penalty.IsPositive() {
		u.logger.Info("abort penalty charged",
			slog.String("seller_id", res.Campaign.SellerID.String()),
			slog.String("campaign_id", res.Campaign.ID.String()),
			slog.String("penalty", res.Penalty.String()))
	}
	u.out.notify(ctx, app.MarketerID, fmt.Sprintf("You were removed from campaign %q.", res.Campaign.Title))
	u.out.emit(ctx, domain.EventApplicationAborted, res.Campaign.ID, domain.ApplicationEvent{
		ApplicationID: app.ID,
		CampaignID:    app.CampaignID,
		MarketerID:    app.MarketerID,
		At:            app.UpdatedAt,
	})
	u.out.statusChanged(ctx, res.Campaign, from)
	return &res, nil
}

// Withdraw lets a marketer take back a pending application.
func (u *ApplicationUseCase) Withdraw(ctx context.Context, actor domain.Actor, applicationID uuid.UUID) (*domain.Application, error) {
	return u.marketerTransition(ctx, actor, applicationID, func(ctx context.Context, tx port.Tx, app *domain.Application, now time.Time) error {
		if err := app.Transition(domain.ApplicationWithdrawn, now); err != nil {
			return err
		}
		return tx.UpdateApplication(ctx, app)
	})
}

// AttachSubmission records the marketer's video for an accepted
// application. The video must belong to the marketer's linked account. The
// engagement read becomes the submission snapshot; the processed
// high-water mark is left alone so the next sweep pays the full delta.
func (u *ApplicationUseCase) AttachSubmission(ctx context.Context, actor domain.Actor, applicationID uuid.UUID, videoLink string) (*domain.Application, error) {
	app, err := u.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.MarketerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if app.Status != domain.ApplicationAccepted {
		return nil, domain.ErrInvalidTransition
	}
	videoID, err := domain.ParseVideoID(videoLink)
	if err != nil {
		return nil, fmt.Errorf("video link %q: %w", videoLink, err)
	}
	marketer, err := u.repo.GetUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	owner, err := u.verifier.OwnerOf(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("resolve video owner: %w", err)
	}
	if !strings.EqualFold(strings.TrimPrefix(owner, "@"), strings.TrimPrefix(marketer.TikTokUsername, "@")) {
		return nil, domain.ErrOwnershipMismatch
	}
	stats, err := u.source.FetchStats(ctx, videoLink)
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			return nil, fmt.Errorf("fetch video stats: %w", err)
		}
		return nil, fmt.Errorf("fetch video stats: %w: %w", domain.ErrEngagementSourceUnavailable, err)
	}

	return u.marketerTransition(ctx, actor, applicationID, func(ctx context.Context, tx port.Tx, app *domain.Application, now time.Time) error {
		if err := app.Attach(videoLink, videoID, stats, now); err != nil {
			return err
		}
		return tx.UpdateApplication(ctx, app)
	})
}

// ListForCampaign returns every application of a campaign to its seller.
func (u *ApplicationUseCase) ListForCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*port.CampaignApplications, error) {
	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !ownsCampaign(actor, c) {
		return nil, domain.ErrForbidden
	}
	apps, err := u.repo.ListApplications(ctx, port.ApplicationFilter{CampaignID: &campaignID})
	if err != nil {
		return nil, err
	}
	res := &port.CampaignApplications{Applications: apps, Total: len(apps)}
	for _, a := range apps {
		if a.Status == domain.ApplicationAccepted {
			res.Accepted++
		}
	}
	return res, nil
}

// ListMine returns the calling marketer's applications.
func (u *ApplicationUseCase) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	return u.repo.ListApplications(ctx, port.ApplicationFilter{MarketerID: &actor.UserID})
}

type sellerStep func(ctx context.Context, tx port.Tx, c *domain.Campaign, app *domain.Application, now time.Time) error

// sellerTransition loads the application, checks the actor owns its
// campaign and runs step inside the campaign's unit of work.
func (u *ApplicationUseCase) sellerTransition(ctx context.Context, actor domain.Actor, applicationID uuid.UUID, step sellerStep) (*domain.Application, error) {
	found, err := u.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	var app domain.Application
	err = withRetry(ctx, func() error {
		return u.repo.WithinCampaign(ctx, found.CampaignID, func(ctx context.Context, tx port.Tx) error {
			c, err := tx.Campaign(ctx)
			if err != nil {
				return err
			}
			if !ownsCampaign(actor, c) {
				return domain.ErrForbidden
			}
			cur, err := tx.GetApplication(ctx, applicationID)
			if err != nil {
				return err
			}
			if err = step(ctx, tx, c, cur, u.nowFn()); err != nil {
				return err
			}
			app = *cur
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

type marketerStep func(ctx context.Context, tx port.Tx, app *domain.Application, now time.Time) error

func (u *ApplicationUseCase) marketerTransition(ctx context.Context, actor domain.Actor, applicationID uuid.UUID, step marketerStep) (*domain.Application, error) {
	found, err := u.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if found.MarketerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	var app domain.Application
	err = withRetry(ctx, func() error {
		return u.repo.WithinCampaign(ctx, found.CampaignID, func(ctx context.Context, tx port.Tx) error {
			cur, err := tx.GetApplication(ctx, applicationID)
			if err != nil {
				return err
			}
			if err = step(ctx, tx, cur, u.nowFn()); err != nil {
				return err
			}
			app = *cur
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

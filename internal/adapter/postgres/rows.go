package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"creator-ads/internal/core/domain"
)

const (
	campaignColumns = `id, seller_id, title, description, budget, remaining_budget, total_payout,
        allowed_marketers, min_follower_count, status, expires_at, created_at, updated_at`

	applicationColumns = `id, campaign_id, marketer_id, status, video_link, video_id, views, likes,
        comments, stats_updated_at, is_active, processed_views, processed_likes, processed_at,
        pending_payout, created_at, updated_at`

	userColumns = `id, name, role, tiktok_username, follower_count, balance, connection_coins,
        abort_count, created_at, updated_at`

	payoutColumns = `id, cycle_id, marketer_id, campaign_id, application_id, amount,
        performance_factor, campaign_budget, created_at`
)

// scanner is satisfied by pgx.Row and pgx.CollectableRow.
type scanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row scanner) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.SellerID,
		&c.Title,
		&c.Description,
		&c.Budget,
		&c.RemainingBudget,
		&c.TotalPayout,
		&c.AllowedMarketers,
		&c.MinFollowerCount,
		&c.Status,
		&c.ExpiresAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func scanApplication(row scanner) (domain.Application, error) {
	var (
		a                      domain.Application
		link, videoID          *string
		views, likes, comments int64
		statsAt                *time.Time
		active                 bool
	)
	err := row.Scan(
		&a.ID,
		&a.CampaignID,
		&a.MarketerID,
		&a.Status,
		&link,
		&videoID,
		&views,
		&likes,
		&comments,
		&statsAt,
		&active,
		&a.LastProcessed.Views,
		&a.LastProcessed.Likes,
		&a.LastProcessed.ProcessedAt,
		&a.PendingPayout,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	if link != nil {
		a.Submission = &domain.Submission{
			VideoLink: *link,
			Stats: domain.SnapshotStats{
				Views:    views,
				Likes:    likes,
				Comments: comments,
				IsActive: active,
			},
		}
		if videoID != nil {
			a.Submission.VideoID = *videoID
		}
		if statsAt != nil {
			a.Submission.Stats.LastUpdated = *statsAt
		}
	}
	return a, nil
}

// submissionArgs flattens the optional submission into nullable columns.
func submissionArgs(a *domain.Application) (link, videoID *string, views, likes, comments int64, statsAt *time.Time, active bool) {
	if a.Submission == nil {
		return nil, nil, 0, 0, 0, nil, false
	}
	s := a.Submission
	at := s.Stats.LastUpdated
	return &s.VideoLink, &s.VideoID, s.Stats.Views, s.Stats.Likes, s.Stats.Comments, &at, s.Stats.IsActive
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Role,
		&u.TikTokUsername,
		&u.FollowerCount,
		&u.Balance,
		&u.ConnectionCoins,
		&u.AbortCount,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func scanPayout(row scanner) (domain.PayoutRecord, error) {
	var p domain.PayoutRecord
	err := row.Scan(
		&p.ID,
		&p.CycleID,
		&p.MarketerID,
		&p.CampaignID,
		&p.ApplicationID,
		&p.Amount,
		&p.PerformanceFactor,
		&p.CampaignBudget,
		&p.CreatedAt,
	)
	return p, err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

// mapError turns serialization failures and deadlocks into
// domain.ErrConflict so callers can retry the unit of work.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Message)
		}
	}
	return err
}

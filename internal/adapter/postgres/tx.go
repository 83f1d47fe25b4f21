package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// pgTx is the port.Tx handed to WithinCampaign callbacks. campaign is the
// row locked when the transaction started, kept current by UpdateCampaign.
type pgTx struct {
	tx       pgx.Tx
	campaign domain.Campaign
}

func (t *pgTx) Campaign(_ context.Context) (*domain.Campaign, error) {
	c := t.campaign
	return &c, nil
}

func (t *pgTx) UpdateCampaign(ctx context.Context, c *domain.Campaign) error {
	if c.ID != t.campaign.ID {
		return domain.ErrForbidden
	}
	_, err := t.tx.Exec(ctx, `UPDATE campaigns
SET remaining_budget = $1, total_payout = $2, status = $3, expires_at = $4, updated_at = $5
WHERE id = $6`,
		c.RemainingBudget, c.TotalPayout, c.Status, c.ExpiresAt, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError(err)
	}
	t.campaign = *c
	return nil
}

func (t *pgTx) CountApplications(ctx context.Context, status domain.ApplicationStatus) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx, `SELECT count(*) FROM applications
WHERE campaign_id = $1 AND ($2 = '' OR status = $2)`, t.campaign.ID, string(status)).Scan(&n)
	return n, mapError(err)
}

func (t *pgTx) ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+applicationColumns+` FROM applications
WHERE campaign_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at`, t.campaign.ID, string(status))
	if err != nil {
		return nil, mapError(err)
	}
	apps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Application, error) {
		return scanApplication(row)
	})
	return apps, mapError(err)
}

func (t *pgTx) GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	return t.findApplication(ctx, `id = $2`, id)
}

func (t *pgTx) FindApplication(ctx context.Context, marketerID uuid.UUID) (*domain.Application, error) {
	return t.findApplication(ctx, `marketer_id = $2`, marketerID)
}

func (t *pgTx) findApplication(ctx context.Context, cond string, arg uuid.UUID) (*domain.Application, error) {
	a, err := scanApplication(t.tx.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications
WHERE campaign_id = $1 AND `+cond, t.campaign.ID, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (t *pgTx) InsertApplication(ctx context.Context, a *domain.Application) error {
	if a.CampaignID != t.campaign.ID {
		return domain.ErrForbidden
	}
	link, videoID, views, likes, comments, statsAt, active := submissionArgs(a)
	_, err := t.tx.Exec(ctx, `INSERT INTO applications (`+applicationColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		a.ID, a.CampaignID, a.MarketerID, a.Status, link, videoID, views, likes, comments, statsAt, active,
		a.LastProcessed.Views, a.LastProcessed.Likes, a.LastProcessed.ProcessedAt, a.PendingPayout,
		a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err, "applications_campaign_marketer_key") {
		return domain.ErrDuplicateApplication
	}
	return mapError(err)
}

func (t *pgTx) UpdateApplication(ctx context.Context, a *domain.Application) error {
	if a.CampaignID != t.campaign.ID {
		return domain.ErrForbidden
	}
	link, videoID, views, likes, comments, statsAt, active := submissionArgs(a)
	_, err := t.tx.Exec(ctx, `UPDATE applications
SET status = $1, video_link = $2, video_id = $3, views = $4, likes = $5, comments = $6,
    stats_updated_at = $7, is_active = $8, processed_views = $9, processed_likes = $10,
    processed_at = $11, pending_payout = $12, updated_at = $13
WHERE id = $14 AND campaign_id = $15`,
		a.Status, link, videoID, views, likes, comments, statsAt, active,
		a.LastProcessed.Views, a.LastProcessed.Likes, a.LastProcessed.ProcessedAt, a.PendingPayout,
		a.UpdatedAt, a.ID, a.CampaignID)
	return mapError(err)
}

func (t *pgTx) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(t.tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (t *pgTx) UpdateUser(ctx context.Context, u *domain.User) error {
	_, err := t.tx.Exec(ctx, `UPDATE users
SET balance = $1, connection_coins = $2, abort_count = $3, updated_at = $4
WHERE id = $5`, u.Balance, u.ConnectionCoins, u.AbortCount, u.UpdatedAt, u.ID)
	return mapError(err)
}

func (t *pgTx) InsertPayout(ctx context.Context, p *domain.PayoutRecord) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO payouts (`+payoutColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.CycleID, p.MarketerID, p.CampaignID, p.ApplicationID, p.Amount,
		p.PerformanceFactor, p.CampaignBudget, p.CreatedAt)
	if isUniqueViolation(err, "payouts_application_cycle_key") {
		return domain.ErrConflict
	}
	return mapError(err)
}

var _ port.Tx = (*pgTx)(nil)

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// Repository implements port.Repository using pgxpool for PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a new repository instance.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetCampaign returns a campaign by id.
func (r *Repository) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCampaign stores a new campaign.
func (r *Repository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		c.ID, c.SellerID, c.Title, c.Description, c.Budget, c.RemainingBudget, c.TotalPayout,
		c.AllowedMarketers, c.MinFollowerCount, c.Status, c.ExpiresAt, c.CreatedAt, c.UpdatedAt)
	return err
}

// ListCampaigns returns campaigns with their application counters.
func (r *Repository) ListCampaigns(ctx context.Context, f port.CampaignFilter) ([]port.CampaignSummary, error) {
	var (
		where []string
		args  []any
	)
	if f.SellerID != nil {
		args = append(args, *f.SellerID)
		where = append(where, fmt.Sprintf("c.seller_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if f.MaxFollowers != nil {
		args = append(args, *f.MaxFollowers)
		where = append(where, fmt.Sprintf("c.min_follower_count <= $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}
	query := fmt.Sprintf(`
        SELECT %s,
            (SELECT count(*) FROM applications a WHERE a.campaign_id = c.id),
            (SELECT count(*) FROM applications a WHERE a.campaign_id = c.id AND a.status = 'accepted')
        FROM campaigns c
        %s
        ORDER BY c.created_at DESC`, campaignColumns, clause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.CampaignSummary, error) {
		var (
			s     port.CampaignSummary
			total int
			acc   int
		)
		c, err := scanCampaign(campaignWithCounts{row: row, total: &total, accepted: &acc})
		s.Campaign, s.ApplicationCount, s.AcceptedCount = c, total, acc
		return s, err
	})
}

// campaignWithCounts appends the two counter columns to a campaign scan.
type campaignWithCounts struct {
	row             scanner
	total, accepted *int
}

func (c campaignWithCounts) Scan(dest ...any) error {
	return c.row.Scan(append(dest, c.total, c.accepted)...)
}

// ListPayableCampaignIDs returns campaigns the payout sweep must visit.
func (r *Repository) ListPayableCampaignIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id FROM campaigns
        WHERE remaining_budget > 0 AND status IN ('active', 'completed')
        ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

// GetApplication returns an application by id.
func (r *Repository) GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	a, err := scanApplication(r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListApplications returns applications matching the filter, oldest first.
func (r *Repository) ListApplications(ctx context.Context, f port.ApplicationFilter) ([]domain.Application, error) {
	var (
		where []string
		args  []any
	)
	if f.CampaignID != nil {
		args = append(args, *f.CampaignID)
		where = append(where, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	if f.MarketerID != nil {
		args = append(args, *f.MarketerID)
		where = append(where, fmt.Sprintf("marketer_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM applications %s ORDER BY created_at`, applicationColumns, clause), args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Application, error) {
		return scanApplication(row)
	})
}

// GetUser returns a user by id.
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListPayouts returns the ledger of a campaign in insertion order.
func (r *Repository) ListPayouts(ctx context.Context, campaignID uuid.UUID) ([]domain.PayoutRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE campaign_id = $1 ORDER BY created_at, id`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PayoutRecord, error) {
		return scanPayout(row)
	})
}

// WithinCampaign runs fn in a serializable transaction that holds the
// campaign row lock. Serialization failures surface as domain.ErrConflict.
func (r *Repository) WithinCampaign(ctx context.Context, campaignID uuid.UUID, fn func(ctx context.Context, tx port.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// lock campaign
	c, err := scanCampaign(tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return mapError(err)
	}

	if err = fn(ctx, &pgTx{tx: tx, campaign: c}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

var _ port.Repository = (*Repository)(nil)

package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"creator-ads/internal/core/domain"
)

// demoID derives a stable id so seeding twice is a no-op.
func demoID(kind, name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("creator-ads/"+kind+"/"+name))
}

// Demo returns the demo accounts and campaigns. The marketer handles match
// the videos of the fixture engagement source.
func Demo(now time.Time) ([]domain.User, []domain.Campaign) {
	user := func(name string, role domain.Role, followers int64) domain.User {
		u := domain.User{
			ID:              demoID("user", name),
			Name:            name,
			Role:            role,
			FollowerCount:   followers,
			Balance:         decimal.Zero,
			ConnectionCoins: 10,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if role == domain.RoleMarketer {
			u.TikTokUsername = name
		}
		return u
	}
	users := []domain.User{
		user("admin", domain.RoleAdmin, 0),
		user("seller1", domain.RoleSeller, 0),
		user("marketer1", domain.RoleMarketer, 10000),
		user("marketer2", domain.RoleMarketer, 50000),
	}

	campaign := func(title string, budget int64, allowed int, minFollowers int64) domain.Campaign {
		c, _ := domain.NewCampaign(users[1].ID, title, "Post a video featuring the product.",
			decimal.NewFromInt(budget), allowed, minFollowers, now, 24*time.Hour)
		c.ID = demoID("campaign", title)
		return c
	}
	campaigns := []domain.Campaign{
		campaign("Summer sneakers", 1000, 2, 0),
		campaign("Studio headphones", 5000, 4, 20000),
	}
	return users, campaigns
}

// Seed inserts demo data into the creator-ads database.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	users, campaigns := Demo(time.Now().UTC())
	for _, u := range users {
		_, err := db.Exec(ctx, `INSERT INTO users
    (id, name, role, tiktok_username, follower_count, balance, connection_coins, abort_count, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) ON CONFLICT DO NOTHING`,
			u.ID, u.Name, u.Role, u.TikTokUsername, u.FollowerCount, u.Balance, u.ConnectionCoins, u.AbortCount, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return err
		}
	}
	for _, c := range campaigns {
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, seller_id, title, description, budget, remaining_budget, total_payout, allowed_marketers,
     min_follower_count, status, expires_at, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) ON CONFLICT DO NOTHING`,
			c.ID, c.SellerID, c.Title, c.Description, c.Budget, c.RemainingBudget, c.TotalPayout, c.AllowedMarketers,
			c.MinFollowerCount, c.Status, c.ExpiresAt, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

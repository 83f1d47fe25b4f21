package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role is the marketplace role of a user.
type Role string

const (
	RoleSeller   Role = "seller"
	RoleMarketer Role = "marketer"
	RoleAdmin    Role = "admin"
)

// User is the subset of an account the campaign core reads and writes.
type User struct {
	ID              uuid.UUID
	Name            string
	Role            Role
	TikTokUsername  string
	FollowerCount   int64
	Balance         decimal.Decimal
	ConnectionCoins int
	AbortCount      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Actor describes the authenticated caller of a use case. The HTTP layer
// builds it from the bearer token and passes it down.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// Is reports whether the actor has role r. Admins pass every check.
func (a Actor) Is(r Role) bool {
	return a.Role == r || a.Role == RoleAdmin
}

// AbortPenalty charges the seller for aborting a marketer and counts the
// abort. The first FreeAborts aborts are free.
func (u *User) AbortPenalty(budget decimal.Decimal, p Policy, now time.Time) decimal.Decimal {
	penalty := decimal.Zero
	if u.AbortCount >= p.FreeAborts {
		penalty = budget.Mul(p.AbortPenaltyRatio)
		u.Balance = u.Balance.Sub(penalty)
	}
	u.AbortCount++
	u.UpdatedAt = now
	return penalty
}

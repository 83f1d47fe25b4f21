package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationTransitions(t *testing.T) {
	all := []ApplicationStatus{
		ApplicationPending, ApplicationAccepted, ApplicationRejected,
		ApplicationWithdrawn, ApplicationAborted, ApplicationCompleted,
	}
	legal := map[[2]ApplicationStatus]bool{
		{ApplicationPending, ApplicationAccepted}:   true,
		{ApplicationPending, ApplicationRejected}:   true,
		{ApplicationPending, ApplicationWithdrawn}:  true,
		{ApplicationAccepted, ApplicationAborted}:   true,
		{ApplicationAccepted, ApplicationCompleted}: true,
	}
	for _, from := range all {
		for _, to := range all {
			a := Application{Status: from}
			err := a.Transition(to, cycleNow)
			if legal[[2]ApplicationStatus{from, to}] {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, a.Status)
				continue
			}
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			assert.Equal(t, from, a.Status)
		}
	}
}

func TestAttachKeepsProcessedMark(t *testing.T) {
	a := NewApplication(uuid.New(), uuid.New(), cycleNow)
	assert.ErrorIs(t, a.Attach("l", "1", EngagementStats{}, cycleNow), ErrInvalidTransition)

	require.NoError(t, a.Transition(ApplicationAccepted, cycleNow))
	require.NoError(t, a.Attach("l", "1", EngagementStats{Views: 50, Likes: 5}, cycleNow))
	a.MarkProcessed(50, 5, decimal.NewFromInt(2), cycleNow)

	// A resubmission starts from the old high-water mark.
	require.NoError(t, a.Attach("l2", "2", EngagementStats{Views: 10}, cycleNow.Add(time.Hour)))
	assert.Equal(t, int64(50), a.LastProcessed.Views)
	views, likes := a.Delta()
	assert.Zero(t, views)
	assert.Zero(t, likes)
	assert.True(t, a.Payable())
}

func TestDeltaAndMarkProcessed(t *testing.T) {
	a := NewApplication(uuid.New(), uuid.New(), cycleNow)
	views, likes := a.Delta()
	assert.Zero(t, views)
	assert.Zero(t, likes)

	a.Status = ApplicationAccepted
	a.Submission = &Submission{Stats: SnapshotStats{Views: 120, Likes: 7, IsActive: true}}
	views, likes = a.Delta()
	assert.Equal(t, int64(120), views)
	assert.Equal(t, int64(7), likes)

	a.MarkProcessed(120, 7, decimal.RequireFromString("1.5"), cycleNow)
	a.MarkProcessed(100, 3, decimal.RequireFromString("0.5"), cycleNow)
	assert.Equal(t, int64(120), a.LastProcessed.Views)
	assert.Equal(t, int64(7), a.LastProcessed.Likes)
	assert.True(t, decimal.NewFromInt(2).Equal(a.PendingPayout))
	require.NotNil(t, a.LastProcessed.ProcessedAt)
}

func TestSnapshotMergeNeverDecreases(t *testing.T) {
	s := SnapshotStats{Views: 100, Likes: 10, Comments: 1}
	s.Merge(EngagementStats{Views: 90, Likes: 12, Comments: 0}, cycleNow)
	assert.Equal(t, SnapshotStats{Views: 100, Likes: 12, Comments: 1, LastUpdated: cycleNow}, s)
}

func TestParseVideoID(t *testing.T) {
	id, err := ParseVideoID("https://www.tiktok.com/@marketer1/video/123456789?lang=en")
	require.NoError(t, err)
	assert.Equal(t, "123456789", id)

	for _, bad := range []string{"", "https://www.tiktok.com/@marketer1", "https://vm.tiktok.com/video/abc"} {
		_, err = ParseVideoID(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestAbortPenalty(t *testing.T) {
	p := DefaultPolicy()
	seller := User{Balance: decimal.NewFromInt(500)}
	budget := decimal.NewFromInt(1000)

	assert.True(t, seller.AbortPenalty(budget, p, cycleNow).IsZero())
	assert.Equal(t, 1, seller.AbortCount)
	assert.True(t, decimal.NewFromInt(500).Equal(seller.Balance))

	assert.True(t, decimal.NewFromInt(100).Equal(seller.AbortPenalty(budget, p, cycleNow)))
	assert.Equal(t, 2, seller.AbortCount)
	assert.True(t, decimal.NewFromInt(400).Equal(seller.Balance))
}

func TestActorIs(t *testing.T) {
	assert.True(t, Actor{Role: RoleSeller}.Is(RoleSeller))
	assert.False(t, Actor{Role: RoleMarketer}.Is(RoleSeller))
	assert.True(t, Actor{Role: RoleAdmin}.Is(RoleMarketer))
}

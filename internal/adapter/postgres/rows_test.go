package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-ads/internal/core/domain"
)

// fakeRow copies fixed values into scan destinations.
type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return errors.New("column count mismatch")
	}
	for i, v := range r {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			*d = v.(uuid.UUID)
		case *domain.ApplicationStatus:
			*d = v.(domain.ApplicationStatus)
		case *domain.CampaignStatus:
			*d = v.(domain.CampaignStatus)
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case **string:
			*d, _ = v.(*string)
		case *int64:
			*d = v.(int64)
		case **time.Time:
			*d, _ = v.(*time.Time)
		case *bool:
			*d = v.(bool)
		case *decimal.Decimal:
			*d = v.(decimal.Decimal)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func applicationRow(link *string, at *time.Time) fakeRow {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var videoID *string
	if link != nil {
		id := "42"
		videoID = &id
	}
	return fakeRow{
		uuid.New(), uuid.New(), uuid.New(), domain.ApplicationAccepted,
		link, videoID, int64(10), int64(2), int64(1), at, true,
		int64(5), int64(1), (*time.Time)(nil), decimal.NewFromInt(3), now, now,
	}
}

func TestScanApplicationWithoutSubmission(t *testing.T) {
	a, err := scanApplication(applicationRow(nil, nil))
	require.NoError(t, err)
	assert.Nil(t, a.Submission)
	assert.Equal(t, int64(5), a.LastProcessed.Views)
	assert.Nil(t, a.LastProcessed.ProcessedAt)
}

func TestScanApplicationWithSubmission(t *testing.T) {
	link := "https://www.tiktok.com/@m/video/42"
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	a, err := scanApplication(applicationRow(&link, &at))
	require.NoError(t, err)
	require.NotNil(t, a.Submission)
	assert.Equal(t, link, a.Submission.VideoLink)
	assert.Equal(t, "42", a.Submission.VideoID)
	assert.Equal(t, int64(10), a.Submission.Stats.Views)
	assert.Equal(t, at, a.Submission.Stats.LastUpdated)
	assert.True(t, a.Submission.Stats.IsActive)
}

func TestSubmissionArgsRoundTrip(t *testing.T) {
	link, videoID, _, _, _, statsAt, active := submissionArgs(&domain.Application{})
	assert.Nil(t, link)
	assert.Nil(t, videoID)
	assert.Nil(t, statsAt)
	assert.False(t, active)

	a := &domain.Application{Submission: &domain.Submission{VideoLink: "l", VideoID: "1", Stats: domain.SnapshotStats{Views: 7, IsActive: true}}}
	link, videoID, views, _, _, statsAt, active := submissionArgs(a)
	assert.Equal(t, "l", *link)
	assert.Equal(t, "1", *videoID)
	assert.Equal(t, int64(7), views)
	assert.NotNil(t, statsAt)
	assert.True(t, active)
}

func TestScanCampaignWithCounts(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	row := fakeRow{
		id, uuid.New(), "Sneakers", "", decimal.NewFromInt(1000), decimal.NewFromInt(600), decimal.NewFromInt(400),
		2, int64(100), domain.CampaignCompleted, now.Add(24 * time.Hour), now, now,
		5, 2,
	}

	var total, accepted int
	c, err := scanCampaign(campaignWithCounts{row: row, total: &total, accepted: &accepted})
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, "Sneakers", c.Title)
	assert.Equal(t, 2, c.AllowedMarketers)
	assert.Equal(t, domain.CampaignCompleted, c.Status)
	assert.True(t, decimal.NewFromInt(600).Equal(c.RemainingBudget))
	assert.Equal(t, 5, total)
	assert.Equal(t, 2, accepted)

	// Without the counter columns the scan is short by two.
	_, err = scanCampaign(campaignWithCounts{row: row[:13], total: &total, accepted: &accepted})
	assert.Error(t, err)
}

func TestMapError(t *testing.T) {
	for _, code := range []string{"40001", "40P01"} {
		err := mapError(&pgconn.PgError{Code: code, Message: "could not serialize access"})
		assert.ErrorIs(t, err, domain.ErrConflict, code)
	}

	other := &pgconn.PgError{Code: "23502"}
	assert.Same(t, other, mapError(other))
	assert.NoError(t, mapError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "payouts_application_cycle_key"}
	assert.True(t, isUniqueViolation(err, "payouts_application_cycle_key"))
	assert.False(t, isUniqueViolation(err, "applications_campaign_marketer_key"))
	assert.False(t, isUniqueViolation(errors.New("boom"), "payouts_application_cycle_key"))
}

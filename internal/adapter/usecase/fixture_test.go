package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"creator-ads/internal/adapter/memory"
	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
	"creator-ads/internal/core/port/mocks"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t        *testing.T
	store    *memory.Store
	events   *mocks.MockEventPublisher
	notifier *mocks.MockNotifier
	source   *mocks.MockEngagementSource
	verifier *mocks.MockIdentityVerifier
	policy   domain.Policy
	logger   *slog.Logger

	seller domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:        t,
		store:    memory.NewStore(),
		events:   mocks.NewMockEventPublisher(t),
		notifier: mocks.NewMockNotifier(t),
		source:   mocks.NewMockEngagementSource(t),
		verifier: mocks.NewMockIdentityVerifier(t),
		policy:   domain.DefaultPolicy(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	// Events and notifications are best effort; most tests do not care.
	f.events.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.seller = f.addUser(domain.RoleSeller, "", 0)
	return f
}

func (f *fixture) addUser(role domain.Role, handle string, followers int64) domain.User {
	u := domain.User{
		ID:              uuid.New(),
		Name:            handle,
		Role:            role,
		TikTokUsername:  handle,
		FollowerCount:   followers,
		Balance:         decimal.Zero,
		ConnectionCoins: 10,
		CreatedAt:       testNow,
	}
	f.store.PutUser(u)
	return u
}

func (f *fixture) addCampaign(budget int64, allowed int) domain.Campaign {
	f.t.Helper()
	c, err := domain.NewCampaign(f.seller.ID, "Spring drop", "", decimal.NewFromInt(budget), allowed, 0, testNow, 24*time.Hour)
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.CreateCampaign(context.Background(), &c))
	return c
}

func (f *fixture) sellerActor() domain.Actor {
	return domain.Actor{UserID: f.seller.ID, Role: domain.RoleSeller}
}

func marketerActor(u domain.User) domain.Actor {
	return domain.Actor{UserID: u.ID, Role: domain.RoleMarketer}
}

func (f *fixture) campaigns() *CampaignUseCase {
	u := NewCampaignUseCase(f.store, f.policy, f.events, f.logger)
	u.nowFn = func() time.Time { return testNow }
	return u
}

func (f *fixture) applications() *ApplicationUseCase {
	u := NewApplicationUseCase(f.store, f.source, f.verifier, f.notifier, f.events, f.policy, f.logger)
	u.nowFn = func() time.Time { return testNow }
	return u
}

func (f *fixture) payouts() *PayoutUseCase {
	u := NewPayoutUseCase(f.store, f.source, f.events, f.policy, 4, f.logger)
	u.nowFn = func() time.Time { return testNow }
	return u
}

// applyAndAccept puts a marketer into the campaign as accepted.
func (f *fixture) applyAndAccept(c domain.Campaign, m domain.User) domain.Application {
	f.t.Helper()
	ctx := context.Background()
	res, err := f.applications().Apply(ctx, marketerActor(m), c.ID)
	require.NoError(f.t, err)
	app, err := f.applications().Accept(ctx, f.sellerActor(), res.Application.ID)
	require.NoError(f.t, err)
	return *app
}

// submit attaches a video with the given starting engagement.
func (f *fixture) submit(app domain.Application, m domain.User, videoID string, views, likes int64) domain.Application {
	f.t.Helper()
	link := "https://www.tiktok.com/@" + m.TikTokUsername + "/video/" + videoID
	f.verifier.EXPECT().OwnerOf(mock.Anything, videoID).Return(m.TikTokUsername, nil).Once()
	f.source.EXPECT().FetchStats(mock.Anything, link).Return(domain.EngagementStats{Views: views, Likes: likes}, nil).Once()
	got, err := f.applications().AttachSubmission(context.Background(), marketerActor(m), app.ID, link)
	require.NoError(f.t, err)
	return *got
}

func (f *fixture) campaign(id uuid.UUID) domain.Campaign {
	f.t.Helper()
	c, err := f.store.GetCampaign(context.Background(), id)
	require.NoError(f.t, err)
	return *c
}

func (f *fixture) user(id uuid.UUID) domain.User {
	f.t.Helper()
	u, err := f.store.GetUser(context.Background(), id)
	require.NoError(f.t, err)
	return *u
}

func (f *fixture) application(id uuid.UUID) domain.Application {
	f.t.Helper()
	a, err := f.store.GetApplication(context.Background(), id)
	require.NoError(f.t, err)
	return *a
}

var _ port.Repository = (*memory.Store)(nil)

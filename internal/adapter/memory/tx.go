package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
)

type memTx struct {
	store      *Store
	campaignID uuid.UUID

	campaign     *domain.Campaign
	applications map[uuid.UUID]domain.Application
	users        map[uuid.UUID]domain.User
	payouts      []domain.PayoutRecord
	userLocks    []*sync.Mutex
}

func (t *memTx) Campaign(ctx context.Context) (*domain.Campaign, error) {
	if t.campaign != nil {
		c := *t.campaign
		return &c, nil
	}
	return t.store.GetCampaign(ctx, t.campaignID)
}

func (t *memTx) UpdateCampaign(_ context.Context, c *domain.Campaign) error {
	if c.ID != t.campaignID {
		return domain.ErrForbidden
	}
	cp := *c
	t.campaign = &cp
	return nil
}

// view merges staged applications over committed ones for this campaign.
func (t *memTx) view() []domain.Application {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	var out []domain.Application
	for id, a := range t.store.applications {
		if _, staged := t.applications[id]; staged || a.CampaignID != t.campaignID {
			continue
		}
		out = append(out, cloneApplication(a))
	}
	for _, a := range t.applications {
		out = append(out, cloneApplication(a))
	}
	return out
}

func (t *memTx) CountApplications(_ context.Context, status domain.ApplicationStatus) (int, error) {
	n := 0
	for _, a := range t.view() {
		if status == "" || a.Status == status {
			n++
		}
	}
	return n, nil
}

func (t *memTx) ListApplications(_ context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range t.view() {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (t *memTx) GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	if a, ok := t.applications[id]; ok {
		a = cloneApplication(a)
		return &a, nil
	}
	a, err := t.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.CampaignID != t.campaignID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (t *memTx) FindApplication(_ context.Context, marketerID uuid.UUID) (*domain.Application, error) {
	for _, a := range t.view() {
		if a.MarketerID == marketerID {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *memTx) InsertApplication(ctx context.Context, a *domain.Application) error {
	if a.CampaignID != t.campaignID {
		return domain.ErrForbidden
	}
	if _, err := t.FindApplication(ctx, a.MarketerID); err == nil {
		return domain.ErrDuplicateApplication
	}
	t.applications[a.ID] = cloneApplication(*a)
	return nil
}

func (t *memTx) UpdateApplication(_ context.Context, a *domain.Application) error {
	if a.CampaignID != t.campaignID {
		return domain.ErrForbidden
	}
	t.applications[a.ID] = cloneApplication(*a)
	return nil
}

func (t *memTx) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := t.users[id]; ok {
		return &u, nil
	}
	if _, err := t.store.GetUser(ctx, id); err != nil {
		return nil, err
	}
	m := t.store.lock(id)
	m.Lock()
	t.userLocks = append(t.userLocks, m)
	// Re-read under the lock so the staged copy is current.
	u, err := t.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	t.users[id] = *u
	return u, nil
}

func (t *memTx) UpdateUser(_ context.Context, u *domain.User) error {
	if _, ok := t.users[u.ID]; !ok {
		return domain.ErrForbidden
	}
	t.users[u.ID] = *u
	return nil
}

func (t *memTx) InsertPayout(_ context.Context, p *domain.PayoutRecord) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	for _, existing := range slices.Concat(t.store.payouts, t.payouts) {
		if existing.ApplicationID == p.ApplicationID && existing.CycleID == p.CycleID {
			return domain.ErrConflict
		}
	}
	t.payouts = append(t.payouts, *p)
	return nil
}

func (t *memTx) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.campaign != nil {
		t.store.campaigns[t.campaign.ID] = *t.campaign
	}
	for id, a := range t.applications {
		t.store.applications[id] = a
	}
	for id, u := range t.users {
		t.store.users[id] = u
	}
	t.store.payouts = append(t.store.payouts, t.payouts...)
	return nil
}

func (t *memTx) unlockUsers() {
	for i := len(t.userLocks) - 1; i >= 0; i-- {
		t.userLocks[i].Unlock()
	}
}

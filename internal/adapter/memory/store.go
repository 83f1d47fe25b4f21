package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// Store implements port.Repository in process memory. Campaign and user
// locks mirror the row locks taken by the postgres adapter, so it is safe
// for concurrent use and honours the same atomicity contract.
type Store struct {
	mu           sync.RWMutex
	campaigns    map[uuid.UUID]domain.Campaign
	applications map[uuid.UUID]domain.Application
	users        map[uuid.UUID]domain.User
	payouts      []domain.PayoutRecord

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		campaigns:    make(map[uuid.UUID]domain.Campaign),
		applications: make(map[uuid.UUID]domain.Application),
		users:        make(map[uuid.UUID]domain.User),
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// PutUser inserts or replaces a user. Accounts are owned by the identity
// service, this is used for seeding.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) lock(id uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	return m
}

func (s *Store) GetCampaign(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.ID] = *c
	return nil
}

func (s *Store) ListCampaigns(_ context.Context, f port.CampaignFilter) ([]port.CampaignSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []port.CampaignSummary
	for _, c := range s.campaigns {
		if f.SellerID != nil && c.SellerID != *f.SellerID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.MaxFollowers != nil && c.MinFollowerCount > *f.MaxFollowers {
			continue
		}
		sum := port.CampaignSummary{Campaign: c}
		for _, a := range s.applications {
			if a.CampaignID != c.ID {
				continue
			}
			sum.ApplicationCount++
			if a.Status == domain.ApplicationAccepted {
				sum.AcceptedCount++
			}
		}
		out = append(out, sum)
	}
	slices.SortFunc(out, func(a, b port.CampaignSummary) int {
		return b.Campaign.CreatedAt.Compare(a.Campaign.CreatedAt)
	})
	return out, nil
}

func (s *Store) ListPayableCampaignIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []uuid.UUID
	for id, c := range s.campaigns {
		if c.Payable() {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *Store) GetApplication(_ context.Context, id uuid.UUID) (*domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a = cloneApplication(a)
	return &a, nil
}

func (s *Store) ListApplications(_ context.Context, f port.ApplicationFilter) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Application
	for _, a := range s.applications {
		if f.CampaignID != nil && a.CampaignID != *f.CampaignID {
			continue
		}
		if f.MarketerID != nil && a.MarketerID != *f.MarketerID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, cloneApplication(a))
	}
	slices.SortFunc(out, func(a, b domain.Application) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *Store) ListPayouts(_ context.Context, campaignID uuid.UUID) ([]domain.PayoutRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PayoutRecord
	for _, p := range s.payouts {
		if p.CampaignID == campaignID {
			out = append(out, p)
		}
	}
	return out, nil
}

// WithinCampaign serialises units of work per campaign. Writes are staged
// on the tx and applied only when fn succeeds.
func (s *Store) WithinCampaign(ctx context.Context, campaignID uuid.UUID, fn func(ctx context.Context, tx port.Tx) error) error {
	m := s.lock(campaignID)
	m.Lock()
	defer m.Unlock()

	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return err
	}
	tx := &memTx{
		store:        s,
		campaignID:   campaignID,
		applications: make(map[uuid.UUID]domain.Application),
		users:        make(map[uuid.UUID]domain.User),
	}
	defer tx.unlockUsers()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

func cloneApplication(a domain.Application) domain.Application {
	if a.Submission != nil {
		sub := *a.Submission
		a.Submission = &sub
	}
	if a.LastProcessed.ProcessedAt != nil {
		at := *a.LastProcessed.ProcessedAt
		a.LastProcessed.ProcessedAt = &at
	}
	return a
}

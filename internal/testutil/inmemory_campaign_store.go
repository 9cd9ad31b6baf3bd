package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/givepoint/givepoint/internal/domain/campaign"
	ierr "github.com/givepoint/givepoint/internal/errors"
)

// InMemoryCampaignStore is an in-memory implementation of the campaign
// repository
type InMemoryCampaignStore struct {
	mu        sync.Mutex
	campaigns map[string]*campaign.Campaign
}

func NewInMemoryCampaignStore() *InMemoryCampaignStore {
	return &InMemoryCampaignStore{
		campaigns: make(map[string]*campaign.Campaign),
	}
}

func (s *InMemoryCampaignStore) Get(ctx context.Context, id string) (*campaign.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.campaigns[id]
	if !exists {
		return nil, ierr.NewError("campaign not found").
			WithHint("Campaign not found").
			Mark(ierr.ErrNotFound)
	}

	copy := *c
	return &copy, nil
}

func (s *InMemoryCampaignStore) Create(ctx context.Context, c *campaign.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[c.ID]; exists {
		return ierr.NewError("campaign already exists").
			WithHint("Campaign already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	copy := *c
	s.campaigns[c.ID] = &copy
	return nil
}

func (s *InMemoryCampaignStore) SetBillingProductID(ctx context.Context, id string, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.campaigns[id]
	if !exists {
		return ierr.NewError("campaign not found").
			WithHint("Campaign not found").
			Mark(ierr.ErrNotFound)
	}

	c.BillingProductID = &productID
	return nil
}

func (s *InMemoryCampaignStore) IncrementCollected(ctx context.Context, id string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.campaigns[id]
	if !exists {
		return ierr.NewError("campaign not found").
			WithHint("Campaign not found").
			Mark(ierr.ErrNotFound)
	}

	now := time.Now().UTC()
	c.CollectedAmount += amount
	c.DonationCount++
	c.LastUpdated = &now
	c.UpdatedAt = now
	return nil
}

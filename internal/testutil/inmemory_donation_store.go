package testutil

import (
	"context"
	"sync"

	"github.com/givepoint/givepoint/internal/domain/donation"
	ierr "github.com/givepoint/givepoint/internal/errors"
)

// InMemoryDonationStore is an in-memory implementation of the donation
// repository
type InMemoryDonationStore struct {
	mu        sync.Mutex
	donations map[string]*donation.Donation
}

func NewInMemoryDonationStore() *InMemoryDonationStore {
	return &InMemoryDonationStore{
		donations: make(map[string]*donation.Donation),
	}
}

func (s *InMemoryDonationStore) Create(ctx context.Context, d *donation.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.donations[d.ID]; exists {
		return ierr.NewError("donation already exists").
			WithHint("Donation already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	copy := *d
	s.donations[d.ID] = &copy
	return nil
}

func (s *InMemoryDonationStore) Get(ctx context.Context, id string) (*donation.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, exists := s.donations[id]
	if !exists {
		return nil, s.notFound()
	}

	copy := *d
	return &copy, nil
}

func (s *InMemoryDonationStore) Update(ctx context.Context, d *donation.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.donations[d.ID]; !exists {
		return s.notFound()
	}

	copy := *d
	s.donations[d.ID] = &copy
	return nil
}

func (s *InMemoryDonationStore) GetByIntentID(ctx context.Context, intentID string) (*donation.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.donations {
		if d.GatewayIntentID != nil && *d.GatewayIntentID == intentID {
			copy := *d
			return &copy, nil
		}
	}
	return nil, s.notFound()
}

func (s *InMemoryDonationStore) GetByInvoiceID(ctx context.Context, invoiceID string) (*donation.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.donations {
		if d.GatewayInvoiceID != nil && *d.GatewayInvoiceID == invoiceID {
			copy := *d
			return &copy, nil
		}
	}
	return nil, s.notFound()
}

func (s *InMemoryDonationStore) ListByCampaign(ctx context.Context, campaignID string) ([]*donation.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*donation.Donation
	for _, d := range s.donations {
		if d.CampaignID == campaignID {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (s *InMemoryDonationStore) notFound() error {
	return ierr.NewError("donation not found").
		WithHint("Donation not found").
		Mark(ierr.ErrNotFound)
}

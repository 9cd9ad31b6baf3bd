package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/givepoint/givepoint/internal/domain/subscription"
	ierr "github.com/givepoint/givepoint/internal/errors"
)

// InMemorySubscriptionStore is an in-memory implementation of the
// subscription repository with the same merge semantics as the postgres
// one.
type InMemorySubscriptionStore struct {
	mu            sync.Mutex
	subscriptions map[string]*subscription.Subscription
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subscriptions: make(map[string]*subscription.Subscription),
	}
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, exists := s.subscriptions[id]
	if !exists {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}

	copy := *sub
	return &copy, nil
}

func (s *InMemorySubscriptionStore) Upsert(ctx context.Context, sub *subscription.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.subscriptions[sub.ID]
	if !exists {
		copy := *sub
		s.subscriptions[sub.ID] = &copy
		return nil
	}

	if sub.CustomerID != "" {
		existing.CustomerID = sub.CustomerID
	}
	if sub.CampaignID != "" {
		existing.CampaignID = sub.CampaignID
	}
	if sub.DonorID != "" {
		existing.DonorID = sub.DonorID
	}
	if sub.Status != "" {
		existing.Status = sub.Status
	}
	if sub.Interval != "" {
		existing.Interval = sub.Interval
	}
	if sub.IntervalCount > 0 {
		existing.IntervalCount = sub.IntervalCount
	}
	if sub.PriceID != "" {
		existing.PriceID = sub.PriceID
	}
	if sub.Amount > 0 {
		existing.Amount = sub.Amount
	}
	if sub.Currency != "" {
		existing.Currency = sub.Currency
	}
	if sub.CurrentPeriodEnd != nil {
		existing.CurrentPeriodEnd = sub.CurrentPeriodEnd
	}
	if sub.DefaultPaymentMethod != nil {
		existing.DefaultPaymentMethod = sub.DefaultPaymentMethod
	}
	if sub.Platform != "" {
		existing.Platform = sub.Platform
	}
	existing.IsGiftAid = sub.IsGiftAid
	existing.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *InMemorySubscriptionStore) RecordInvoiceOutcome(ctx context.Context, id string, succeeded bool, paymentError string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, exists := s.subscriptions[id]
	if !exists {
		return nil
	}

	if succeeded {
		sub.FailureCount = 0
		sub.LastPaymentError = nil
	} else {
		sub.FailureCount++
		sub.LastPaymentError = &paymentError
	}
	sub.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemorySubscriptionStore) ListByDonor(ctx context.Context, donorID string) ([]*subscription.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*subscription.Subscription
	for _, sub := range s.subscriptions {
		if sub.DonorID == donorID {
			copy := *sub
			result = append(result, &copy)
		}
	}
	return result, nil
}

package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/givepoint/givepoint/internal/domain/invoice"
	ierr "github.com/givepoint/givepoint/internal/errors"
)

// InMemoryInvoiceStore is an in-memory implementation of the invoice
// repository with the same merge semantics as the postgres one.
type InMemoryInvoiceStore struct {
	mu       sync.Mutex
	invoices map[string]*invoice.Invoice
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, exists := s.invoices[id]
	if !exists {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	copy := *inv
	return &copy, nil
}

func (s *InMemoryInvoiceStore) Upsert(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.invoices[inv.ID]
	if !exists {
		copy := *inv
		s.invoices[inv.ID] = &copy
		return nil
	}

	if inv.SubscriptionID != "" {
		existing.SubscriptionID = inv.SubscriptionID
	}
	if inv.CampaignID != "" {
		existing.CampaignID = inv.CampaignID
	}
	if inv.Amount > 0 {
		existing.Amount = inv.Amount
	}
	if inv.Currency != "" {
		existing.Currency = inv.Currency
	}
	if inv.Status != "" {
		existing.Status = inv.Status
	}
	if inv.HostedURL != nil {
		existing.HostedURL = inv.HostedURL
	}
	if inv.PaidAt != nil {
		existing.PaidAt = inv.PaidAt
	}
	existing.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *InMemoryInvoiceStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*invoice.Invoice
	for _, inv := range s.invoices {
		if inv.SubscriptionID == subscriptionID {
			copy := *inv
			result = append(result, &copy)
		}
	}
	return result, nil
}

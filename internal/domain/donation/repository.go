package donation

import "context"

// Repository defines the interface for donation persistence.
//
// GetByIntentID and GetByInvoiceID return ErrNotFound when no record
// exists; the webhook processor relies on that to implement its
// check-before-increment idempotency guard.
type Repository interface {
	Create(ctx context.Context, donation *Donation) error
	Get(ctx context.Context, id string) (*Donation, error)
	Update(ctx context.Context, donation *Donation) error
	GetByIntentID(ctx context.Context, intentID string) (*Donation, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Donation, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*Donation, error)
}

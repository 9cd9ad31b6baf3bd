package subscription

import "context"

// Repository defines the interface for subscription persistence
type Repository interface {
	Get(ctx context.Context, id string) (*Subscription, error)
	// Upsert merge-writes the subscription snapshot keyed by the gateway
	// subscription id; zero-valued optional fields never clobber
	// previously stored ones
	Upsert(ctx context.Context, subscription *Subscription) error
	// RecordInvoiceOutcome increments the failure count with the error
	// message on a failed invoice, or resets the count and clears the
	// error on a successful one
	RecordInvoiceOutcome(ctx context.Context, id string, succeeded bool, paymentError string) error
	ListByDonor(ctx context.Context, donorID string) ([]*Subscription, error)
}

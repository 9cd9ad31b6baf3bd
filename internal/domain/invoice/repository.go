package invoice

import "context"

// Repository defines the interface for invoice persistence
type Repository interface {
	Get(ctx context.Context, id string) (*Invoice, error)
	// Upsert merge-writes the invoice keyed by the gateway invoice id;
	// unset optional fields never clobber previously stored ones
	Upsert(ctx context.Context, invoice *Invoice) error
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*Invoice, error)
}

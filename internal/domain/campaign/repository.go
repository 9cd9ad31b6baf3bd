package campaign

import "context"

// Repository defines the interface for campaign persistence
type Repository interface {
	Get(ctx context.Context, id string) (*Campaign, error)
	Create(ctx context.Context, campaign *Campaign) error
	// SetBillingProductID merge-writes the cached catalog product id
	SetBillingProductID(ctx context.Context, id string, productID string) error
	// IncrementCollected atomically adds amount to CollectedAmount, bumps
	// DonationCount by one and refreshes LastUpdated. The increment must
	// be a single atomic store operation, not read-modify-write.
	IncrementCollected(ctx context.Context, id string, amount int64) error
}

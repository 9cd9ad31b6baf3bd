package user

import "context"

// Repository defines the interface for user account persistence
type Repository interface {
	Get(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	// SetGatewayCustomerID merge-writes the cached gateway customer id
	// onto the account without touching any other field
	SetGatewayCustomerID(ctx context.Context, id string, customerID string) error
}

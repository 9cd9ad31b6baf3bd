package user

import (
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/types"
)

// Account is the authentication identity of a donor. Accounts are created
// by the auth system; this subsystem only ever fills in the gateway
// customer id on first payment action.
type Account struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	// GatewayCustomerID caches the Stripe customer created for this
	// account on first payment action
	GatewayCustomerID *string `db:"gateway_customer_id" json:"gateway_customer_id,omitempty"`

	types.BaseModel
}

func (a *Account) Validate() error {
	if a.ID == "" {
		return ierr.NewError("invalid account id").
			WithHint("Account id is required").
			Mark(ierr.ErrValidation)
	}
	if a.Email == "" {
		return ierr.NewError("invalid account email").
			WithHint("Account email is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (a *Account) TableName() string {
	return "user_accounts"
}

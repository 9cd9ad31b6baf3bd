package subscription

import (
	"time"

	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/types"
)

// Subscription mirrors the gateway's subscription state. Records are
// keyed by the gateway subscription id and merge-written from the full
// snapshot carried on customer.subscription.* events, so deliveries can
// be absorbed out of order within reason.
type Subscription struct {
	// ID is the gateway subscription id
	ID         string `db:"id" json:"id"`
	CustomerID string `db:"customer_id" json:"customer_id"`
	CampaignID string `db:"campaign_id" json:"campaign_id"`
	DonorID    string `db:"donor_id" json:"donor_id"`

	Status        string                `db:"status" json:"status"`
	Interval      types.BillingInterval `db:"interval" json:"interval"`
	IntervalCount int64                 `db:"interval_count" json:"interval_count"`
	PriceID       string                `db:"price_id" json:"price_id"`
	// Amount is in integer minor-currency units
	Amount   int64  `db:"amount" json:"amount"`
	Currency string `db:"currency" json:"currency"`

	CurrentPeriodEnd *time.Time `db:"current_period_end" json:"current_period_end,omitempty"`
	// DefaultPaymentMethod is the gateway fingerprint of the default
	// payment method, used by the kiosk UI to display card details
	DefaultPaymentMethod *string `db:"default_payment_method" json:"default_payment_method,omitempty"`

	IsGiftAid bool           `db:"is_gift_aid" json:"is_gift_aid"`
	Platform  types.Platform `db:"platform" json:"platform"`

	// FailureCount increments on failed invoices and resets to zero on
	// the next successful one
	FailureCount     int64   `db:"failure_count" json:"failure_count"`
	LastPaymentError *string `db:"last_payment_error" json:"last_payment_error,omitempty"`

	types.BaseModel
}

func (s *Subscription) Validate() error {
	if s.ID == "" {
		return ierr.NewError("invalid subscription id").
			WithHint("Subscription id is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s *Subscription) TableName() string {
	return "subscriptions"
}

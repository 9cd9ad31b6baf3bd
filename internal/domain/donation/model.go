package donation

import (
	"time"

	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/types"
)

// Donation is the authoritative record of one successful one-time charge
// or one per-invoice recurring charge. A previously failed recurring
// donation is flipped to success in place when its invoice later clears;
// it is never duplicated.
type Donation struct {
	ID string `db:"id" json:"id"`
	// Amount is in integer minor-currency units
	Amount     int64  `db:"amount" json:"amount"`
	Currency   string `db:"currency" json:"currency"`
	CampaignID string `db:"campaign_id" json:"campaign_id"`
	DonorID    string `db:"donor_id" json:"donor_id"`
	DonorName  string `db:"donor_name" json:"donor_name"`
	IsGiftAid  bool   `db:"is_gift_aid" json:"is_gift_aid"`

	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`
	Platform      types.Platform      `db:"platform" json:"platform"`

	// GatewayIntentID is the payment intent id for one-time donations
	GatewayIntentID *string `db:"gateway_intent_id" json:"gateway_intent_id,omitempty"`
	// GatewayInvoiceID correlates recurring donations to their invoice
	GatewayInvoiceID *string `db:"gateway_invoice_id" json:"gateway_invoice_id,omitempty"`
	// ErrorMessage explains why a recurring charge failed
	ErrorMessage *string `db:"error_message" json:"error_message,omitempty"`

	DonatedAt time.Time `db:"donated_at" json:"donated_at"`

	types.BaseModel
}

func (d *Donation) Validate() error {
	if d.Amount <= 0 {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if d.Currency == "" {
		return ierr.NewError("invalid currency").
			WithHint("Currency is required").
			Mark(ierr.ErrValidation)
	}
	if d.CampaignID == "" {
		return ierr.NewError("invalid campaign id").
			WithHint("Campaign id is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (d *Donation) TableName() string {
	return "donations"
}

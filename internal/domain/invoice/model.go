package invoice

import (
	"time"

	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/types"
)

// Invoice is the ledger record of one gateway invoice, correlated to a
// subscription. Records are merge-upserted from invoice webhook events
// and never destructively overwritten.
type Invoice struct {
	// ID is the gateway invoice id
	ID             string `db:"id" json:"id"`
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`
	CampaignID     string `db:"campaign_id" json:"campaign_id"`

	// Amount is in integer minor-currency units
	Amount   int64  `db:"amount" json:"amount"`
	Currency string `db:"currency" json:"currency"`
	Status   string `db:"status" json:"status"`

	HostedURL *string    `db:"hosted_url" json:"hosted_url,omitempty"`
	PaidAt    *time.Time `db:"paid_at" json:"paid_at,omitempty"`

	types.BaseModel
}

func (i *Invoice) Validate() error {
	if i.ID == "" {
		return ierr.NewError("invalid invoice id").
			WithHint("Invoice id is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (i *Invoice) TableName() string {
	return "invoices"
}

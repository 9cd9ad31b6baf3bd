package campaign

import (
	"time"

	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/types"
)

// Campaign is a donation target. CollectedAmount and DonationCount are
// aggregates maintained exclusively through atomic increments from
// successful monetary events; they are never overwritten wholesale, so
// concurrent webhook deliveries cannot lose updates.
type Campaign struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	// CollectedAmount is in integer minor-currency units
	CollectedAmount int64 `db:"collected_amount" json:"collected_amount"`
	DonationCount   int64 `db:"donation_count" json:"donation_count"`
	// BillingProductID caches the gateway catalog product created lazily
	// for this campaign's recurring prices
	BillingProductID *string    `db:"billing_product_id" json:"billing_product_id,omitempty"`
	LastUpdated      *time.Time `db:"last_updated" json:"last_updated,omitempty"`

	types.BaseModel
}

func (c *Campaign) Validate() error {
	if c.ID == "" {
		return ierr.NewError("invalid campaign id").
			WithHint("Campaign id is required").
			Mark(ierr.ErrValidation)
	}
	if c.Name == "" {
		return ierr.NewError("invalid campaign name").
			WithHint("Campaign name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (c *Campaign) TableName() string {
	return "campaigns"
}

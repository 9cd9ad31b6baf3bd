package dto

import (
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/shopspring/decimal"
)

// DonationMetadata travels on gateway objects so webhook events can be
// correlated back to a campaign and donor. Values are strings because
// gateway metadata is a string map.
type DonationMetadata struct {
	CampaignID string `json:"campaignId"`
	DonorID    string `json:"donorId"`
	DonorName  string `json:"donorName"`
	IsGiftAid  string `json:"isGiftAid"`
	Platform   string `json:"platform"`
}

// ToGatewayMetadata flattens the metadata onto a gateway object
func (m DonationMetadata) ToGatewayMetadata() types.Metadata {
	return types.Metadata{
		"campaignId": m.CampaignID,
		"donorId":    m.DonorID,
		"donorName":  m.DonorName,
		"isGiftAid":  m.IsGiftAid,
		"platform":   m.Platform,
	}
}

// CreatePaymentIntentRequest creates a one-time donation intent
type CreatePaymentIntentRequest struct {
	// Amount is in integer minor-currency units
	Amount   int64            `json:"amount"`
	Currency string           `json:"currency"`
	Metadata DonationMetadata `json:"metadata"`
}

func (r *CreatePaymentIntentRequest) Validate() error {
	if r.Amount <= 0 {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if r.Currency == "" {
		return ierr.NewError("invalid currency").
			WithHint("Currency is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreatePaymentIntentResponse carries either the client secret and
// ephemeral key for SDK-driven flows, or just the customer and intent id
// for card-present flows confirmed out-of-band at the terminal
type CreatePaymentIntentResponse struct {
	Customer                  string `json:"customer"`
	PaymentIntentClientSecret string `json:"paymentIntentClientSecret,omitempty"`
	EphemeralKey              string `json:"ephemeralKey,omitempty"`
	PaymentIntentID           string `json:"paymentIntentId,omitempty"`
	PublishableKey            string `json:"publishableKey,omitempty"`
}

// CreateSetupIntentResponse carries the client secret used to save a
// payment method ahead of a subscription purchase
type CreateSetupIntentResponse struct {
	Customer                string `json:"customer"`
	SetupIntentClientSecret string `json:"setupIntentClientSecret"`
}

// CreateSubscriptionRequest starts a recurring donation
type CreateSubscriptionRequest struct {
	CampaignID      string                `json:"campaignId"`
	Interval        types.BillingInterval `json:"interval"`
	Amount          int64                 `json:"amount"`
	Currency        string                `json:"currency,omitempty"`
	PaymentMethodID string                `json:"paymentMethodId"`
	IsGiftAid       bool                  `json:"isGiftAid,omitempty"`
	Platform        types.Platform        `json:"platform,omitempty"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if err := r.Interval.Validate(); err != nil {
		return err
	}
	if r.Amount <= 0 {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if r.CampaignID == "" {
		return ierr.NewError("invalid campaign id").
			WithHint("Campaign id is required").
			Mark(ierr.ErrValidation)
	}
	if r.PaymentMethodID == "" {
		return ierr.NewError("invalid payment method id").
			WithHint("Payment method id is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreateSubscriptionResponse reports the created subscription; the client
// secret is present only when the first invoice requires an additional
// authentication challenge
type CreateSubscriptionResponse struct {
	SubscriptionID            string `json:"subscriptionId"`
	Status                    string `json:"status"`
	PaymentIntentClientSecret string `json:"paymentIntentClientSecret,omitempty"`
}

// CampaignResponse is the read-side view of a campaign's aggregates
type CampaignResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CollectedAmount int64  `json:"collected_amount"`
	DonationCount   int64  `json:"donation_count"`
}

// DonationResponse is the read-side view of a donation record
type DonationResponse struct {
	ID            string              `json:"id"`
	Amount        int64               `json:"amount"`
	AmountDisplay decimal.Decimal     `json:"amount_display"`
	Currency      string              `json:"currency"`
	CampaignID    string              `json:"campaign_id"`
	DonorName     string              `json:"donor_name"`
	IsGiftAid     bool                `json:"is_gift_aid"`
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	Platform      types.Platform      `json:"platform"`
	DonatedAt     string              `json:"donated_at"`
}

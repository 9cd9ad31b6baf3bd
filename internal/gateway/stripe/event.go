package stripe

import (
	"encoding/json"
	"time"

	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/stripe/stripe-go/v82"
)

// The webhook payload shapes below are decoded straight from the event's
// raw JSON rather than through the SDK's object types, so the processor
// keeps working when the gateway sends an API version newer than the SDK
// pins. Only the fields the processor reads are declared.

// PaymentIntentView is the slice of a payment_intent event the processor
// acts on.
type PaymentIntentView struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Customer string            `json:"customer"`
	Metadata map[string]string `json:"metadata"`
}

// SubscriptionView is the slice of a customer.subscription event the
// processor acts on. Billing period fields live on the items since the
// gateway moved them off the subscription object.
type SubscriptionView struct {
	ID                   string            `json:"id"`
	Customer             string            `json:"customer"`
	Status               string            `json:"status"`
	Metadata             map[string]string `json:"metadata"`
	DefaultPaymentMethod string            `json:"default_payment_method"`
	Items                struct {
		Data []SubscriptionItemView `json:"data"`
	} `json:"items"`
}

type SubscriptionItemView struct {
	CurrentPeriodEnd int64 `json:"current_period_end"`
	Price            struct {
		ID         string `json:"id"`
		UnitAmount int64  `json:"unit_amount"`
		Currency   string `json:"currency"`
		Recurring  struct {
			Interval      string `json:"interval"`
			IntervalCount int64  `json:"interval_count"`
		} `json:"recurring"`
	} `json:"price"`
}

// PriceID returns the price id of the first item, "" when absent
func (v *SubscriptionView) PriceID() string {
	if len(v.Items.Data) == 0 {
		return ""
	}
	return v.Items.Data[0].Price.ID
}

// Amount returns the per-period amount of the first item
func (v *SubscriptionView) Amount() int64 {
	if len(v.Items.Data) == 0 {
		return 0
	}
	return v.Items.Data[0].Price.UnitAmount
}

// Currency returns the currency of the first item, "" when absent
func (v *SubscriptionView) Currency() string {
	if len(v.Items.Data) == 0 {
		return ""
	}
	return v.Items.Data[0].Price.Currency
}

// Interval returns the billing period of the first item
func (v *SubscriptionView) Interval() (unit string, count int64) {
	if len(v.Items.Data) == 0 {
		return "", 0
	}
	r := v.Items.Data[0].Price.Recurring
	return r.Interval, r.IntervalCount
}

// CurrentPeriodEnd returns the first item's period end, nil when unset
func (v *SubscriptionView) CurrentPeriodEnd() *time.Time {
	if len(v.Items.Data) == 0 || v.Items.Data[0].CurrentPeriodEnd == 0 {
		return nil
	}
	t := time.Unix(v.Items.Data[0].CurrentPeriodEnd, 0).UTC()
	return &t
}

// InvoiceView is the slice of an invoice event the processor acts on.
// The owning subscription hangs off the parent block since the gateway
// moved it off the invoice object.
type InvoiceView struct {
	ID               string `json:"id"`
	AmountPaid       int64  `json:"amount_paid"`
	AmountDue        int64  `json:"amount_due"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	Customer         string `json:"customer"`
	HostedInvoiceURL string `json:"hosted_invoice_url"`
	Parent           *struct {
		SubscriptionDetails *struct {
			Subscription string            `json:"subscription"`
			Metadata     map[string]string `json:"metadata"`
		} `json:"subscription_details"`
	} `json:"parent"`
	StatusTransitions struct {
		PaidAt int64 `json:"paid_at"`
	} `json:"status_transitions"`
	LastFinalizationError *struct {
		Message string `json:"message"`
	} `json:"last_finalization_error"`
}

// SubscriptionID returns the owning subscription id, "" for one-off
// invoices
func (v *InvoiceView) SubscriptionID() string {
	if v.Parent == nil || v.Parent.SubscriptionDetails == nil {
		return ""
	}
	return v.Parent.SubscriptionDetails.Subscription
}

// SubscriptionMetadata returns the subscription metadata snapshot the
// gateway copies onto the invoice
func (v *InvoiceView) SubscriptionMetadata() map[string]string {
	if v.Parent == nil || v.Parent.SubscriptionDetails == nil {
		return nil
	}
	return v.Parent.SubscriptionDetails.Metadata
}

// PaidAt returns the paid timestamp, nil when the invoice is unpaid
func (v *InvoiceView) PaidAt() *time.Time {
	if v.StatusTransitions.PaidAt == 0 {
		return nil
	}
	t := time.Unix(v.StatusTransitions.PaidAt, 0).UTC()
	return &t
}

// FailureMessage returns the gateway's failure description, with a
// stable fallback when none is present
func (v *InvoiceView) FailureMessage() string {
	if v.LastFinalizationError != nil && v.LastFinalizationError.Message != "" {
		return v.LastFinalizationError.Message
	}
	return "payment failed"
}

// DecodeEventObject decodes the event's raw object payload into one of
// the view types above.
func DecodeEventObject(event *stripe.Event, v any) error {
	if err := json.Unmarshal(event.Data.Raw, v); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to decode event payload").
			WithReportableDetails(map[string]any{
				"event_id":   event.ID,
				"event_type": event.Type,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

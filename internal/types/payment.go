package types

import (
	ierr "github.com/givepoint/givepoint/internal/errors"
)

// PaymentStatus is the lifecycle state of a donation record
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusPending PaymentStatus = "pending"
)

// Platform identifies the client surface a donation originated from.
// Card-present platforms confirm payment out-of-band through a terminal,
// so intents created for them carry the card_present payment method type
// and no client secret is returned.
type Platform string

const (
	PlatformWeb      Platform = "web"
	PlatformIOS      Platform = "ios"
	PlatformAndroid  Platform = "android"
	PlatformKiosk    Platform = "kiosk"
	PlatformTapToPay Platform = "tap_to_pay"
)

// IsCardPresent reports whether payments on this platform are collected
// in person through a terminal
func (p Platform) IsCardPresent() bool {
	return p == PlatformKiosk || p == PlatformTapToPay
}

// BillingInterval is the donor-facing recurrence of a subscription
type BillingInterval string

const (
	BillingIntervalMonthly   BillingInterval = "monthly"
	BillingIntervalQuarterly BillingInterval = "quarterly"
	BillingIntervalYearly    BillingInterval = "yearly"
)

func (b BillingInterval) Validate() error {
	switch b {
	case BillingIntervalMonthly, BillingIntervalQuarterly, BillingIntervalYearly:
		return nil
	default:
		return ierr.NewError("invalid billing interval").
			WithHintf("Interval must be one of monthly, quarterly or yearly, got %q", string(b)).
			Mark(ierr.ErrValidation)
	}
}

// BillingPeriod returns the gateway billing period for the interval.
// Quarterly and yearly intervals are expressed as multi-month periods so
// all recurring prices share the month unit.
func (b BillingInterval) BillingPeriod() (unit string, count int64) {
	switch b {
	case BillingIntervalQuarterly:
		return "month", 3
	case BillingIntervalYearly:
		return "month", 12
	default:
		return "month", 1
	}
}

// BillingIntervalFromPeriod maps a gateway billing period back to the
// donor-facing interval. Unrecognised periods map to monthly.
func BillingIntervalFromPeriod(unit string, count int64) BillingInterval {
	if unit == "year" {
		return BillingIntervalYearly
	}
	switch count {
	case 3:
		return BillingIntervalQuarterly
	case 12:
		return BillingIntervalYearly
	default:
		return BillingIntervalMonthly
	}
}

// WebhookEventType enumerates the gateway events the processor reconciles.
// Anything outside this set is acknowledged and ignored.
type WebhookEventType string

const (
	WebhookEventPaymentIntentSucceeded  WebhookEventType = "payment_intent.succeeded"
	WebhookEventSubscriptionCreated     WebhookEventType = "customer.subscription.created"
	WebhookEventSubscriptionUpdated     WebhookEventType = "customer.subscription.updated"
	WebhookEventSubscriptionDeleted     WebhookEventType = "customer.subscription.deleted"
	WebhookEventInvoicePaymentSucceeded WebhookEventType = "invoice.payment_succeeded"
	WebhookEventInvoicePaymentFailed    WebhookEventType = "invoice.payment_failed"
)

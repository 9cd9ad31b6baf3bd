package webhook

import (
	"context"
	"time"

	"github.com/givepoint/givepoint/internal/domain/campaign"
	"github.com/givepoint/givepoint/internal/domain/donation"
	"github.com/givepoint/givepoint/internal/domain/invoice"
	"github.com/givepoint/givepoint/internal/domain/subscription"
	ierr "github.com/givepoint/givepoint/internal/errors"
	gateway "github.com/givepoint/givepoint/internal/gateway/stripe"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/samber/lo"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Handler reconciles gateway webhook events into the local donation,
// subscription, invoice and campaign records. Every branch is written to
// be replay-safe: delivering the same event twice must not double-count
// campaign totals or duplicate donations.
type Handler struct {
	client           *gateway.Client
	donationRepo     donation.Repository
	subscriptionRepo subscription.Repository
	invoiceRepo      invoice.Repository
	campaignRepo     campaign.Repository
	logger           *logger.Logger
}

func NewHandler(
	client *gateway.Client,
	donationRepo donation.Repository,
	subscriptionRepo subscription.Repository,
	invoiceRepo invoice.Repository,
	campaignRepo campaign.Repository,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		client:           client,
		donationRepo:     donationRepo,
		subscriptionRepo: subscriptionRepo,
		invoiceRepo:      invoiceRepo,
		campaignRepo:     campaignRepo,
		logger:           logger,
	}
}

// ParseEvent verifies the payload signature and returns the decoded
// event. Version mismatches between the gateway account and the SDK are
// tolerated; the processor decodes raw payloads itself.
func (h *Handler) ParseEvent(payload []byte, signature string) (*stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, h.client.WebhookSecret(),
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("invalid webhook signature").
			WithHint("Webhook payload could not be verified").
			Mark(ierr.ErrSignature)
	}
	return &event, nil
}

// HandleEvent dispatches a verified event to its reconciliation branch.
// Event types outside the handled set are acknowledged and ignored.
func (h *Handler) HandleEvent(ctx context.Context, event *stripe.Event) error {
	h.logger.Infow("processing webhook event",
		"event_id", event.ID,
		"event_type", event.Type)

	switch types.WebhookEventType(event.Type) {
	case types.WebhookEventPaymentIntentSucceeded:
		return h.handlePaymentIntentSucceeded(ctx, event)
	case types.WebhookEventSubscriptionCreated,
		types.WebhookEventSubscriptionUpdated,
		types.WebhookEventSubscriptionDeleted:
		return h.handleSubscriptionChange(ctx, event)
	case types.WebhookEventInvoicePaymentSucceeded:
		return h.handleInvoicePaymentSucceeded(ctx, event)
	case types.WebhookEventInvoicePaymentFailed:
		return h.handleInvoicePaymentFailed(ctx, event)
	default:
		h.logger.Debugw("ignoring unhandled event type",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}
}

// handlePaymentIntentSucceeded records a one-time donation and adds it
// to the campaign totals. Intents without donation metadata belong to
// recurring invoices and are left to the invoice branch.
func (h *Handler) handlePaymentIntentSucceeded(ctx context.Context, event *stripe.Event) error {
	var view gateway.PaymentIntentView
	if err := gateway.DecodeEventObject(event, &view); err != nil {
		return err
	}

	campaignID := view.Metadata["campaignId"]
	if campaignID == "" {
		h.logger.Debugw("payment intent has no campaign metadata, skipping",
			"event_id", event.ID,
			"payment_intent_id", view.ID)
		return nil
	}

	// Replay guard: the intent id is recorded on the donation, so a
	// second delivery finds it and stops before touching totals.
	if _, err := h.donationRepo.GetByIntentID(ctx, view.ID); err == nil {
		h.logger.Infow("donation already recorded for intent, skipping",
			"event_id", event.ID,
			"payment_intent_id", view.ID)
		return nil
	} else if !ierr.IsNotFound(err) {
		return err
	}

	don := &donation.Donation{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DONATION),
		Amount:          view.Amount,
		Currency:        view.Currency,
		CampaignID:      campaignID,
		DonorID:         view.Metadata["donorId"],
		DonorName:       view.Metadata["donorName"],
		IsGiftAid:       view.Metadata["isGiftAid"] == "true",
		PaymentStatus:   types.PaymentStatusSuccess,
		Platform:        types.Platform(view.Metadata["platform"]),
		GatewayIntentID: lo.ToPtr(view.ID),
		DonatedAt:       time.Unix(event.Created, 0).UTC(),
		BaseModel:       types.GetDefaultBaseModel(),
	}
	if err := don.Validate(); err != nil {
		return err
	}

	if err := h.donationRepo.Create(ctx, don); err != nil {
		return err
	}

	if err := h.campaignRepo.IncrementCollected(ctx, campaignID, view.Amount); err != nil {
		return err
	}

	h.logger.Infow("recorded one-time donation",
		"donation_id", don.ID,
		"campaign_id", campaignID,
		"amount", view.Amount,
		"payment_intent_id", view.ID)

	return nil
}

// handleSubscriptionChange merge-upserts the subscription snapshot. The
// three subscription event types share one branch since each carries the
// full object; deletion arrives as a snapshot with status canceled.
func (h *Handler) handleSubscriptionChange(ctx context.Context, event *stripe.Event) error {
	var view gateway.SubscriptionView
	if err := gateway.DecodeEventObject(event, &view); err != nil {
		return err
	}

	unit, count := view.Interval()

	sub := &subscription.Subscription{
		ID:            view.ID,
		CustomerID:    view.Customer,
		CampaignID:    view.Metadata["campaignId"],
		DonorID:       view.Metadata["donorId"],
		Status:        view.Status,
		Interval:      types.BillingIntervalFromPeriod(unit, count),
		IntervalCount: count,
		PriceID:       view.PriceID(),
		Amount:        view.Amount(),
		Currency:      view.Currency(),
		IsGiftAid:     view.Metadata["isGiftAid"] == "true",
		Platform:      types.Platform(view.Metadata["platform"]),
		BaseModel:     types.GetDefaultBaseModel(),
	}
	if end := view.CurrentPeriodEnd(); end != nil {
		sub.CurrentPeriodEnd = end
	}
	if view.DefaultPaymentMethod != "" {
		sub.DefaultPaymentMethod = lo.ToPtr(view.DefaultPaymentMethod)
	}
	if err := sub.Validate(); err != nil {
		return err
	}

	if err := h.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return err
	}

	h.logger.Infow("upserted subscription",
		"subscription_id", sub.ID,
		"status", sub.Status,
		"campaign_id", sub.CampaignID)

	return nil
}

// handleInvoicePaymentSucceeded records the recurring donation for the
// invoice, adds it to campaign totals and resets the subscription's
// failure streak. A donation previously recorded as failed for the same
// invoice is flipped to success in place.
func (h *Handler) handleInvoicePaymentSucceeded(ctx context.Context, event *stripe.Event) error {
	view, campaignID, err := h.decodeInvoice(event)
	if err != nil || view == nil {
		return err
	}

	existing, err := h.donationRepo.GetByInvoiceID(ctx, view.ID)
	switch {
	case err == nil && existing.PaymentStatus == types.PaymentStatusSuccess:
		// Replay guard: totals were already incremented for this invoice
		h.logger.Infow("donation already recorded for invoice, skipping",
			"event_id", event.ID,
			"invoice_id", view.ID)
		return nil
	case err == nil:
		existing.PaymentStatus = types.PaymentStatusSuccess
		existing.Amount = view.AmountPaid
		existing.ErrorMessage = nil
		existing.UpdatedAt = time.Now().UTC()
		if err := h.donationRepo.Update(ctx, existing); err != nil {
			return err
		}
	case ierr.IsNotFound(err):
		meta := view.SubscriptionMetadata()
		don := &donation.Donation{
			ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DONATION),
			Amount:           view.AmountPaid,
			Currency:         view.Currency,
			CampaignID:       campaignID,
			DonorID:          meta["donorId"],
			DonorName:        meta["donorName"],
			IsGiftAid:        meta["isGiftAid"] == "true",
			PaymentStatus:    types.PaymentStatusSuccess,
			Platform:         types.Platform(meta["platform"]),
			GatewayInvoiceID: lo.ToPtr(view.ID),
			DonatedAt:        time.Unix(event.Created, 0).UTC(),
			BaseModel:        types.GetDefaultBaseModel(),
		}
		if err := don.Validate(); err != nil {
			return err
		}
		if err := h.donationRepo.Create(ctx, don); err != nil {
			return err
		}
	default:
		return err
	}

	if err := h.upsertInvoice(ctx, view, campaignID, "paid"); err != nil {
		return err
	}

	if subID := view.SubscriptionID(); subID != "" {
		if err := h.subscriptionRepo.RecordInvoiceOutcome(ctx, subID, true, ""); err != nil {
			return err
		}
	}

	if err := h.campaignRepo.IncrementCollected(ctx, campaignID, view.AmountPaid); err != nil {
		return err
	}

	h.logger.Infow("recorded recurring donation",
		"invoice_id", view.ID,
		"campaign_id", campaignID,
		"amount", view.AmountPaid)

	return nil
}

// handleInvoicePaymentFailed records the failed attempt without touching
// campaign totals so the later success can flip it in place.
func (h *Handler) handleInvoicePaymentFailed(ctx context.Context, event *stripe.Event) error {
	view, campaignID, err := h.decodeInvoice(event)
	if err != nil || view == nil {
		return err
	}

	failure := view.FailureMessage()

	existing, err := h.donationRepo.GetByInvoiceID(ctx, view.ID)
	switch {
	case err == nil && existing.PaymentStatus == types.PaymentStatusSuccess:
		// Out-of-order delivery: the invoice already cleared, the stale
		// failure must not regress it
		h.logger.Infow("ignoring failure for already-collected invoice",
			"event_id", event.ID,
			"invoice_id", view.ID)
		return nil
	case err == nil:
		existing.ErrorMessage = lo.ToPtr(failure)
		existing.UpdatedAt = time.Now().UTC()
		if err := h.donationRepo.Update(ctx, existing); err != nil {
			return err
		}
	case ierr.IsNotFound(err):
		meta := view.SubscriptionMetadata()
		don := &donation.Donation{
			ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DONATION),
			Amount:           view.AmountDue,
			Currency:         view.Currency,
			CampaignID:       campaignID,
			DonorID:          meta["donorId"],
			DonorName:        meta["donorName"],
			IsGiftAid:        meta["isGiftAid"] == "true",
			PaymentStatus:    types.PaymentStatusFailed,
			Platform:         types.Platform(meta["platform"]),
			GatewayInvoiceID: lo.ToPtr(view.ID),
			ErrorMessage:     lo.ToPtr(failure),
			DonatedAt:        time.Unix(event.Created, 0).UTC(),
			BaseModel:        types.GetDefaultBaseModel(),
		}
		if err := don.Validate(); err != nil {
			return err
		}
		if err := h.donationRepo.Create(ctx, don); err != nil {
			return err
		}
	default:
		return err
	}

	if err := h.upsertInvoice(ctx, view, campaignID, "open"); err != nil {
		return err
	}

	if subID := view.SubscriptionID(); subID != "" {
		if err := h.subscriptionRepo.RecordInvoiceOutcome(ctx, subID, false, failure); err != nil {
			return err
		}
	}

	h.logger.Warnw("recorded failed recurring charge",
		"invoice_id", view.ID,
		"campaign_id", campaignID,
		"error", failure)

	return nil
}

// decodeInvoice decodes the invoice view and resolves its campaign. A
// nil view with nil error means the invoice is unrelated to a campaign
// and should be acknowledged without action.
func (h *Handler) decodeInvoice(event *stripe.Event) (*gateway.InvoiceView, string, error) {
	var view gateway.InvoiceView
	if err := gateway.DecodeEventObject(event, &view); err != nil {
		return nil, "", err
	}

	campaignID := view.SubscriptionMetadata()["campaignId"]
	if campaignID == "" {
		h.logger.Debugw("invoice has no campaign metadata, skipping",
			"event_id", event.ID,
			"invoice_id", view.ID)
		return nil, "", nil
	}

	return &view, campaignID, nil
}

func (h *Handler) upsertInvoice(ctx context.Context, view *gateway.InvoiceView, campaignID, status string) error {
	amount := view.AmountPaid
	if amount == 0 {
		amount = view.AmountDue
	}

	inv := &invoice.Invoice{
		ID:             view.ID,
		SubscriptionID: view.SubscriptionID(),
		CampaignID:     campaignID,
		Amount:         amount,
		Currency:       view.Currency,
		Status:         status,
		BaseModel:      types.GetDefaultBaseModel(),
	}
	if view.HostedInvoiceURL != "" {
		inv.HostedURL = lo.ToPtr(view.HostedInvoiceURL)
	}
	if paidAt := view.PaidAt(); paidAt != nil {
		inv.PaidAt = paidAt
	}

	return h.invoiceRepo.Upsert(ctx, inv)
}

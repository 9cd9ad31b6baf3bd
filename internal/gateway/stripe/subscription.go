package stripe

import (
	"context"
	"strconv"

	"github.com/givepoint/givepoint/internal/api/dto"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// SubscriptionService creates recurring donations against the gateway.
type SubscriptionService struct {
	client      *Client
	customerSvc *CustomerService
	catalogSvc  *CatalogService
	logger      *logger.Logger
}

func NewSubscriptionService(client *Client, customerSvc *CustomerService, catalogSvc *CatalogService, logger *logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		client:      client,
		customerSvc: customerSvc,
		catalogSvc:  catalogSvc,
		logger:      logger,
	}
}

// CreateSubscription attaches the saved payment method, resolves the
// campaign's recurring price and creates the subscription. The local
// subscription record is written by the webhook processor, not here, so
// the create path stays idempotent against event replay.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, userID, email, name string, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.client.FallbackCurrency()
	}

	customerID, err := s.customerSvc.EnsureCustomer(ctx, userID, email, name)
	if err != nil {
		return nil, err
	}

	if err := s.attachPaymentMethod(ctx, customerID, req.PaymentMethodID); err != nil {
		return nil, err
	}

	// Future invoices charge this method without further client input
	updateParams := &stripe.CustomerUpdateParams{
		InvoiceSettings: &stripe.CustomerUpdateInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(req.PaymentMethodID),
		},
	}
	if _, err := s.client.API().V1Customers.Update(ctx, customerID, updateParams); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to set default payment method").
			WithReportableDetails(map[string]any{
				"customer_id":       customerID,
				"payment_method_id": req.PaymentMethodID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	priceID, err := s.catalogSvc.ResolvePrice(ctx, req.CampaignID, req.Interval, req.Amount, currency)
	if err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionCreateParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionCreateItemParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionCreatePaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
		Metadata: map[string]string{
			"campaignId": req.CampaignID,
			"donorId":    userID,
			"donorName":  name,
			"isGiftAid":  strconv.FormatBool(req.IsGiftAid),
			"platform":   string(req.Platform),
		},
		Expand: []*string{
			stripe.String("latest_invoice.confirmation_secret"),
		},
	}

	sub, err := s.client.API().V1Subscriptions.Create(ctx, params)
	if err != nil {
		s.logger.Errorw("failed to create subscription",
			"error", err,
			"customer_id", customerID,
			"price_id", priceID)
		return nil, ierr.WithError(err).
			WithMessage("failed to create subscription").
			WithReportableDetails(map[string]any{
				"customer_id": customerID,
				"campaign_id": req.CampaignID,
				"price_id":    priceID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	resp := &dto.CreateSubscriptionResponse{
		SubscriptionID: sub.ID,
		Status:         string(sub.Status),
	}

	// The first invoice may need an on-session authentication challenge;
	// surface its client secret so the SDK can run it.
	if sub.LatestInvoice != nil && sub.LatestInvoice.ConfirmationSecret != nil {
		resp.PaymentIntentClientSecret = sub.LatestInvoice.ConfirmationSecret.ClientSecret
	}

	s.logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"customer_id", customerID,
		"campaign_id", req.CampaignID,
		"status", sub.Status)

	return resp, nil
}

// attachPaymentMethod attaches the method to the customer, treating a
// method already attached to the same customer as success.
func (s *SubscriptionService) attachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}

	_, err := s.client.API().V1PaymentMethods.Attach(ctx, paymentMethodID, params)
	if err == nil {
		return nil
	}

	if _, ok := err.(*stripe.Error); ok {
		pm, retrieveErr := s.client.API().V1PaymentMethods.Retrieve(ctx, paymentMethodID, nil)
		if retrieveErr == nil && pm.Customer != nil && pm.Customer.ID == customerID {
			s.logger.Debugw("payment method already attached",
				"customer_id", customerID,
				"payment_method_id", paymentMethodID)
			return nil
		}
	}

	return ierr.WithError(err).
		WithMessage("failed to attach payment method").
		WithReportableDetails(map[string]any{
			"customer_id":       customerID,
			"payment_method_id": paymentMethodID,
		}).
		Mark(ierr.ErrHTTPClient)
}

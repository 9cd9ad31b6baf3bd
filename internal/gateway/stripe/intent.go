package stripe

import (
	"context"

	"github.com/givepoint/givepoint/internal/api/dto"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/stripe/stripe-go/v82"
)

// IntentService creates the gateway intents backing one-time donations
// and saved payment methods.
type IntentService struct {
	client      *Client
	customerSvc *CustomerService
	logger      *logger.Logger
}

func NewIntentService(client *Client, customerSvc *CustomerService, logger *logger.Logger) *IntentService {
	return &IntentService{
		client:      client,
		customerSvc: customerSvc,
		logger:      logger,
	}
}

// CreatePaymentIntent creates a one-time donation intent for the user.
// Card-present platforms get a card_present intent confirmed at the
// terminal; everything else gets a card intent plus an ephemeral key so
// the client SDK can confirm it.
func (s *IntentService) CreatePaymentIntent(ctx context.Context, userID, email, name string, req *dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customerID, err := s.customerSvc.EnsureCustomer(ctx, userID, email, name)
	if err != nil {
		return nil, err
	}

	platform := types.Platform(req.Metadata.Platform)

	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		Customer: stripe.String(customerID),
		Metadata: req.Metadata.ToGatewayMetadata(),
	}
	if platform.IsCardPresent() {
		params.PaymentMethodTypes = stripe.StringSlice([]string{"card_present"})
		params.CaptureMethod = stripe.String(string(stripe.PaymentIntentCaptureMethodAutomatic))
	} else {
		params.PaymentMethodTypes = stripe.StringSlice([]string{"card"})
	}

	intent, err := s.client.API().V1PaymentIntents.Create(ctx, params)
	if err != nil {
		s.logger.Errorw("failed to create payment intent",
			"error", err,
			"customer_id", customerID,
			"amount", req.Amount)
		return nil, ierr.WithError(err).
			WithMessage("failed to create payment intent").
			WithReportableDetails(map[string]any{
				"customer_id": customerID,
				"amount":      req.Amount,
				"currency":    req.Currency,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	resp := &dto.CreatePaymentIntentResponse{
		Customer:       customerID,
		PublishableKey: s.client.PublishableKey(),
	}

	if platform.IsCardPresent() {
		// The terminal collects and confirms out-of-band; the client
		// only needs the intent id to hand to the reader.
		resp.PaymentIntentID = intent.ID
		return resp, nil
	}

	ephemeralKey, err := s.createEphemeralKey(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp.PaymentIntentClientSecret = intent.ClientSecret
	resp.EphemeralKey = ephemeralKey
	return resp, nil
}

// CreateSetupIntent creates an off-session setup intent so the client
// can save a payment method before purchasing a subscription.
func (s *IntentService) CreateSetupIntent(ctx context.Context, userID, email, name string) (*dto.CreateSetupIntentResponse, error) {
	customerID, err := s.customerSvc.EnsureCustomer(ctx, userID, email, name)
	if err != nil {
		return nil, err
	}

	params := &stripe.SetupIntentCreateParams{
		Customer:           stripe.String(customerID),
		Usage:              stripe.String("off_session"),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	setupIntent, err := s.client.API().V1SetupIntents.Create(ctx, params)
	if err != nil {
		s.logger.Errorw("failed to create setup intent",
			"error", err,
			"customer_id", customerID)
		return nil, ierr.WithError(err).
			WithMessage("failed to create setup intent").
			WithReportableDetails(map[string]any{
				"customer_id": customerID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return &dto.CreateSetupIntentResponse{
		Customer:                customerID,
		SetupIntentClientSecret: setupIntent.ClientSecret,
	}, nil
}

func (s *IntentService) createEphemeralKey(ctx context.Context, customerID string) (string, error) {
	params := &stripe.EphemeralKeyCreateParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(stripe.APIVersion),
	}

	key, err := s.client.API().V1EphemeralKeys.Create(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithMessage("failed to create ephemeral key").
			WithReportableDetails(map[string]any{
				"customer_id": customerID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return key.Secret, nil
}

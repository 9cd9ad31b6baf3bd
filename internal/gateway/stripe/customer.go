package stripe

import (
	"context"

	"github.com/givepoint/givepoint/internal/domain/user"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/stripe/stripe-go/v82"
)

// CustomerService resolves the gateway customer backing a donor account.
type CustomerService struct {
	client   *Client
	userRepo user.Repository
	logger   *logger.Logger
}

func NewCustomerService(client *Client, userRepo user.Repository, logger *logger.Logger) *CustomerService {
	return &CustomerService{
		client:   client,
		userRepo: userRepo,
		logger:   logger,
	}
}

// EnsureCustomer returns the gateway customer id for the account,
// creating the customer on first use and caching the id on the account.
// Subsequent calls return the cached id without hitting the gateway.
func (s *CustomerService) EnsureCustomer(ctx context.Context, userID, email, name string) (string, error) {
	account, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return "", err
		}
		// First time we see this donor: provision a local account so the
		// customer id has somewhere to live.
		account = &user.Account{
			ID:        userID,
			Email:     email,
			Name:      name,
			BaseModel: types.GetDefaultBaseModel(),
		}
		if err := s.userRepo.Create(ctx, account); err != nil {
			return "", err
		}
	}

	if account.GatewayCustomerID != nil && *account.GatewayCustomerID != "" {
		return *account.GatewayCustomerID, nil
	}

	params := &stripe.CustomerCreateParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
		Metadata: map[string]string{
			"userId": userID,
		},
	}

	customer, err := s.client.API().V1Customers.Create(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithMessage("failed to create customer in gateway").
			WithReportableDetails(map[string]any{
				"user_id": userID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	if err := s.userRepo.SetGatewayCustomerID(ctx, userID, customer.ID); err != nil {
		return "", err
	}

	s.logger.Infow("created gateway customer",
		"user_id", userID,
		"customer_id", customer.ID)

	return customer.ID, nil
}

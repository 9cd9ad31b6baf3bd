package stripe

import (
	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// Client wraps the Stripe API client with the configured keys. A single
// injected instance is shared by every service and webhook handler so
// they stay testable against fakes of the repositories they write to.
type Client struct {
	api    *stripe.Client
	config config.StripeConfig
	logger *logger.Logger
}

// NewClient creates a configured Stripe client wrapper
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		api:    stripe.NewClient(cfg.Stripe.SecretKey, nil),
		config: cfg.Stripe,
		logger: logger,
	}
}

// API returns the underlying Stripe client
func (c *Client) API() *stripe.Client {
	return c.api
}

// WebhookSecret returns the shared secret used to verify inbound events
func (c *Client) WebhookSecret() string {
	return c.config.WebhookSecret
}

// PublishableKey returns the key the client SDK initializes with
func (c *Client) PublishableKey() string {
	return c.config.PublishableKey
}

// FallbackCurrency returns the currency used when a request omits one
func (c *Client) FallbackCurrency() string {
	return c.config.FallbackCurrency()
}

package stripe

import (
	"context"
	"fmt"
	"time"

	"github.com/givepoint/givepoint/internal/domain/campaign"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/patrickmn/go-cache"
	"github.com/stripe/stripe-go/v82"
)

const (
	priceCacheExpiry  = 12 * time.Hour
	priceCacheCleanup = time.Hour
)

// CatalogService resolves the recurring gateway price for a campaign,
// interval and amount, reusing existing catalog objects wherever
// possible so recurring donations to the same campaign share prices.
type CatalogService struct {
	client       *Client
	campaignRepo campaign.Repository
	logger       *logger.Logger

	// priceCache memoizes resolved price ids per (product, terms) so
	// repeat subscriptions skip the gateway list call entirely
	priceCache *cache.Cache
}

func NewCatalogService(client *Client, campaignRepo campaign.Repository, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		client:       client,
		campaignRepo: campaignRepo,
		logger:       logger,
		priceCache:   cache.New(priceCacheExpiry, priceCacheCleanup),
	}
}

// ResolvePrice returns the id of a gateway price matching the campaign,
// amount, currency and billing interval, creating the product and price
// on first use.
func (s *CatalogService) ResolvePrice(ctx context.Context, campaignID string, interval types.BillingInterval, amount int64, currency string) (string, error) {
	if err := interval.Validate(); err != nil {
		return "", err
	}
	if amount <= 0 {
		return "", ierr.NewError("amount must be positive").
			WithHint("Recurring donation amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	productID, err := s.ensureProduct(ctx, campaignID)
	if err != nil {
		return "", err
	}

	unit, count := interval.BillingPeriod()

	cacheKey := fmt.Sprintf("%s:%s:%d:%d:%s", productID, unit, count, amount, currency)
	if cached, found := s.priceCache.Get(cacheKey); found {
		return cached.(string), nil
	}

	priceID, err := s.findPrice(ctx, productID, unit, count, amount, currency)
	if err != nil {
		return "", err
	}

	if priceID == "" {
		priceID, err = s.createPrice(ctx, productID, interval, unit, count, amount, currency)
		if err != nil {
			return "", err
		}
	}

	s.priceCache.Set(cacheKey, priceID, cache.DefaultExpiration)
	return priceID, nil
}

// ensureProduct returns the campaign's gateway product id, creating the
// product and caching its id on the campaign on first use.
func (s *CatalogService) ensureProduct(ctx context.Context, campaignID string) (string, error) {
	c, err := s.campaignRepo.Get(ctx, campaignID)
	if err != nil {
		return "", err
	}

	if c.BillingProductID != nil && *c.BillingProductID != "" {
		return *c.BillingProductID, nil
	}

	params := &stripe.ProductCreateParams{
		Name: stripe.String(c.Name),
		Metadata: map[string]string{
			"campaignId": c.ID,
		},
	}

	product, err := s.client.API().V1Products.Create(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithMessage("failed to create product in gateway").
			WithReportableDetails(map[string]any{
				"campaign_id": campaignID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	if err := s.campaignRepo.SetBillingProductID(ctx, campaignID, product.ID); err != nil {
		return "", err
	}

	s.logger.Infow("created gateway product for campaign",
		"campaign_id", campaignID,
		"product_id", product.ID)

	return product.ID, nil
}

// findPrice scans the product's active recurring prices for an exact
// match on amount, currency and billing period. Returns "" when no
// price matches.
func (s *CatalogService) findPrice(ctx context.Context, productID, unit string, count, amount int64, currency string) (string, error) {
	params := &stripe.PriceListParams{
		Product:  stripe.String(productID),
		Active:   stripe.Bool(true),
		Currency: stripe.String(currency),
	}

	for price, err := range s.client.API().V1Prices.List(ctx, params) {
		if err != nil {
			return "", ierr.WithError(err).
				WithMessage("failed to list prices in gateway").
				WithReportableDetails(map[string]any{
					"product_id": productID,
				}).
				Mark(ierr.ErrHTTPClient)
		}
		if price.Recurring == nil {
			continue
		}
		if price.UnitAmount != amount {
			continue
		}
		if string(price.Recurring.Interval) != unit || price.Recurring.IntervalCount != count {
			continue
		}
		return price.ID, nil
	}

	return "", nil
}

func (s *CatalogService) createPrice(ctx context.Context, productID string, interval types.BillingInterval, unit string, count, amount int64, currency string) (string, error) {
	params := &stripe.PriceCreateParams{
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(amount),
		Currency:   stripe.String(currency),
		Nickname:   stripe.String(fmt.Sprintf("%s-%d-%s", interval, amount, currency)),
		Recurring: &stripe.PriceCreateRecurringParams{
			Interval:      stripe.String(unit),
			IntervalCount: stripe.Int64(count),
		},
	}

	price, err := s.client.API().V1Prices.Create(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithMessage("failed to create price in gateway").
			WithReportableDetails(map[string]any{
				"product_id": productID,
				"interval":   interval,
				"amount":     amount,
				"currency":   currency,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	s.logger.Infow("created gateway price",
		"product_id", productID,
		"price_id", price.ID,
		"nickname", price.Nickname)

	return price.ID, nil
}

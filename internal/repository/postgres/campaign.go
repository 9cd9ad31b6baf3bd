package postgres

import (
	"context"
	"database/sql"

	"github.com/givepoint/givepoint/internal/domain/campaign"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/jmoiron/sqlx"
)

type campaignRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

func NewCampaignRepository(db *sqlx.DB, logger *logger.Logger) campaign.Repository {
	return &campaignRepository{db: db, logger: logger}
}

func (r *campaignRepository) Get(ctx context.Context, id string) (*campaign.Campaign, error) {
	var c campaign.Campaign
	err := r.db.GetContext(ctx, &c,
		`SELECT id, name, collected_amount, donation_count, billing_product_id,
		        last_updated, created_at, updated_at
		 FROM campaigns WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("campaign not found").
			WithHintf("No campaign found with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get campaign").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *campaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, name, collected_amount, donation_count,
		        billing_product_id, last_updated, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.CollectedAmount, c.DonationCount,
		c.BillingProductID, c.LastUpdated, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create campaign").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *campaignRepository) SetBillingProductID(ctx context.Context, id string, productID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET billing_product_id = $2, updated_at = now()
		 WHERE id = $1`, id, productID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to cache billing product id").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("campaign not found").
			WithHintf("No campaign found with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// IncrementCollected is a single atomic UPDATE so concurrent webhook
// deliveries for the same campaign cannot lose increments
func (r *campaignRepository) IncrementCollected(ctx context.Context, id string, amount int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns
		 SET collected_amount = collected_amount + $2,
		     donation_count = donation_count + 1,
		     last_updated = now(),
		     updated_at = now()
		 WHERE id = $1`, id, amount)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to increment campaign aggregates").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("campaign not found").
			WithHintf("No campaign found with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

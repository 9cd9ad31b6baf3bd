package postgres

import (
	"context"
	"database/sql"

	"github.com/givepoint/givepoint/internal/domain/subscription"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/jmoiron/sqlx"
)

type subscriptionRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *sqlx.DB, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

const subscriptionColumns = `id, customer_id, campaign_id, donor_id, status,
	interval, interval_count, price_id, amount, currency, current_period_end,
	default_payment_method, is_gift_aid, platform, failure_count,
	last_payment_error, created_at, updated_at`

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	var s subscription.Subscription
	err := r.db.GetContext(ctx, &s,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("subscription not found").
			WithHintf("No subscription found with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

// Upsert merge-writes the snapshot. COALESCE on the optional columns keeps
// an event that omits a field from clobbering a previously stored value.
func (r *subscriptionRepository) Upsert(ctx context.Context, s *subscription.Subscription) error {
	if err := s.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (`+subscriptionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 ON CONFLICT (id) DO UPDATE SET
		   customer_id = COALESCE(NULLIF(EXCLUDED.customer_id, ''), subscriptions.customer_id),
		   campaign_id = COALESCE(NULLIF(EXCLUDED.campaign_id, ''), subscriptions.campaign_id),
		   donor_id = COALESCE(NULLIF(EXCLUDED.donor_id, ''), subscriptions.donor_id),
		   status = COALESCE(NULLIF(EXCLUDED.status, ''), subscriptions.status),
		   interval = COALESCE(NULLIF(EXCLUDED.interval, ''), subscriptions.interval),
		   interval_count = CASE WHEN EXCLUDED.interval_count > 0 THEN EXCLUDED.interval_count ELSE subscriptions.interval_count END,
		   price_id = COALESCE(NULLIF(EXCLUDED.price_id, ''), subscriptions.price_id),
		   amount = CASE WHEN EXCLUDED.amount > 0 THEN EXCLUDED.amount ELSE subscriptions.amount END,
		   currency = COALESCE(NULLIF(EXCLUDED.currency, ''), subscriptions.currency),
		   current_period_end = COALESCE(EXCLUDED.current_period_end, subscriptions.current_period_end),
		   default_payment_method = COALESCE(EXCLUDED.default_payment_method, subscriptions.default_payment_method),
		   is_gift_aid = EXCLUDED.is_gift_aid,
		   platform = COALESCE(NULLIF(EXCLUDED.platform, ''), subscriptions.platform),
		   updated_at = now()`,
		s.ID, s.CustomerID, s.CampaignID, s.DonorID, s.Status,
		s.Interval, s.IntervalCount, s.PriceID, s.Amount, s.Currency,
		s.CurrentPeriodEnd, s.DefaultPaymentMethod, s.IsGiftAid, s.Platform,
		s.FailureCount, s.LastPaymentError, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to upsert subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) RecordInvoiceOutcome(ctx context.Context, id string, succeeded bool, paymentError string) error {
	var err error
	if succeeded {
		_, err = r.db.ExecContext(ctx,
			`UPDATE subscriptions
			 SET failure_count = 0, last_payment_error = NULL, updated_at = now()
			 WHERE id = $1`, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE subscriptions
			 SET failure_count = failure_count + 1, last_payment_error = $2, updated_at = now()
			 WHERE id = $1`, id, paymentError)
	}
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record invoice outcome").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) ListByDonor(ctx context.Context, donorID string) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	err := r.db.SelectContext(ctx, &subs,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE donor_id = $1 ORDER BY created_at DESC`, donorID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}

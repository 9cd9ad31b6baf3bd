package postgres

import (
	"context"
	"database/sql"

	"github.com/givepoint/givepoint/internal/domain/invoice"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/jmoiron/sqlx"
)

type invoiceRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *sqlx.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

const invoiceColumns = `id, subscription_id, campaign_id, amount, currency,
	status, hosted_url, paid_at, created_at, updated_at`

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.GetContext(ctx, &inv,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("invoice not found").
			WithHintf("No invoice found with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) Upsert(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices (`+invoiceColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		   subscription_id = COALESCE(NULLIF(EXCLUDED.subscription_id, ''), invoices.subscription_id),
		   campaign_id = COALESCE(NULLIF(EXCLUDED.campaign_id, ''), invoices.campaign_id),
		   amount = CASE WHEN EXCLUDED.amount > 0 THEN EXCLUDED.amount ELSE invoices.amount END,
		   currency = COALESCE(NULLIF(EXCLUDED.currency, ''), invoices.currency),
		   status = COALESCE(NULLIF(EXCLUDED.status, ''), invoices.status),
		   hosted_url = COALESCE(EXCLUDED.hosted_url, invoices.hosted_url),
		   paid_at = COALESCE(EXCLUDED.paid_at, invoices.paid_at),
		   updated_at = now()`,
		inv.ID, inv.SubscriptionID, inv.CampaignID, inv.Amount, inv.Currency,
		inv.Status, inv.HostedURL, inv.PaidAt, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to upsert invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) ListBySubscription(ctx context.Context, subscriptionID string) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT `+invoiceColumns+` FROM invoices
		 WHERE subscription_id = $1 ORDER BY created_at DESC`, subscriptionID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

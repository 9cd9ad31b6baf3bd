package postgres

import (
	"context"
	"database/sql"

	"github.com/givepoint/givepoint/internal/domain/donation"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/jmoiron/sqlx"
)

type donationRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

func NewDonationRepository(db *sqlx.DB, logger *logger.Logger) donation.Repository {
	return &donationRepository{db: db, logger: logger}
}

const donationColumns = `id, amount, currency, campaign_id, donor_id, donor_name,
	is_gift_aid, payment_status, platform, gateway_intent_id, gateway_invoice_id,
	error_message, donated_at, created_at, updated_at`

func (r *donationRepository) Create(ctx context.Context, d *donation.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO donations (`+donationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		d.ID, d.Amount, d.Currency, d.CampaignID, d.DonorID, d.DonorName,
		d.IsGiftAid, d.PaymentStatus, d.Platform, d.GatewayIntentID, d.GatewayInvoiceID,
		d.ErrorMessage, d.DonatedAt, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create donation").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *donationRepository) Get(ctx context.Context, id string) (*donation.Donation, error) {
	return r.getOne(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, id)
}

func (r *donationRepository) Update(ctx context.Context, d *donation.Donation) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE donations
		 SET amount = $2, payment_status = $3, error_message = $4, donated_at = $5, updated_at = now()
		 WHERE id = $1`,
		d.ID, d.Amount, d.PaymentStatus, d.ErrorMessage, d.DonatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update donation").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("donation not found").
			WithHintf("No donation found with id %s", d.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *donationRepository) GetByIntentID(ctx context.Context, intentID string) (*donation.Donation, error) {
	return r.getOne(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE gateway_intent_id = $1`, intentID)
}

func (r *donationRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*donation.Donation, error) {
	return r.getOne(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE gateway_invoice_id = $1`, invoiceID)
}

func (r *donationRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*donation.Donation, error) {
	var donations []*donation.Donation
	err := r.db.SelectContext(ctx, &donations,
		`SELECT `+donationColumns+` FROM donations
		 WHERE campaign_id = $1 ORDER BY donated_at DESC`, campaignID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list donations").
			Mark(ierr.ErrDatabase)
	}
	return donations, nil
}

func (r *donationRepository) getOne(ctx context.Context, query string, arg any) (*donation.Donation, error) {
	var d donation.Donation
	err := r.db.GetContext(ctx, &d, query, arg)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("donation not found").
			WithHint("No matching donation record").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get donation").
			Mark(ierr.ErrDatabase)
	}
	return &d, nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/givepoint/givepoint/internal/domain/user"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

func NewUserRepository(db *sqlx.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.Account, error) {
	var account user.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT id, email, name, gateway_customer_id, created_at, updated_at
		 FROM user_accounts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("account not found").
			WithHintf("No account found with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get account").
			Mark(ierr.ErrDatabase)
	}
	return &account, nil
}

func (r *userRepository) Create(ctx context.Context, account *user.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_accounts (id, email, name, gateway_customer_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.Email, account.Name, account.GatewayCustomerID,
		account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create account").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) SetGatewayCustomerID(ctx context.Context, id string, customerID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_accounts SET gateway_customer_id = $2, updated_at = now()
		 WHERE id = $1`, id, customerID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to cache gateway customer id").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("account not found").
			WithHintf("No account found with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

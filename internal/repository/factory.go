package repository

import (
	"github.com/givepoint/givepoint/internal/domain/campaign"
	"github.com/givepoint/givepoint/internal/domain/donation"
	"github.com/givepoint/givepoint/internal/domain/invoice"
	"github.com/givepoint/givepoint/internal/domain/subscription"
	"github.com/givepoint/givepoint/internal/domain/user"
	"github.com/givepoint/givepoint/internal/logger"
	pgrepo "github.com/givepoint/givepoint/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
)

func NewUserRepository(db *sqlx.DB, logger *logger.Logger) user.Repository {
	return pgrepo.NewUserRepository(db, logger)
}

func NewCampaignRepository(db *sqlx.DB, logger *logger.Logger) campaign.Repository {
	return pgrepo.NewCampaignRepository(db, logger)
}

func NewDonationRepository(db *sqlx.DB, logger *logger.Logger) donation.Repository {
	return pgrepo.NewDonationRepository(db, logger)
}

func NewSubscriptionRepository(db *sqlx.DB, logger *logger.Logger) subscription.Repository {
	return pgrepo.NewSubscriptionRepository(db, logger)
}

func NewInvoiceRepository(db *sqlx.DB, logger *logger.Logger) invoice.Repository {
	return pgrepo.NewInvoiceRepository(db, logger)
}

package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/givepoint/givepoint/internal/api"
	v1 "github.com/givepoint/givepoint/internal/api/v1"
	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/domain/campaign"
	"github.com/givepoint/givepoint/internal/domain/donation"
	"github.com/givepoint/givepoint/internal/gateway/stripe"
	"github.com/givepoint/givepoint/internal/gateway/stripe/webhook"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/postgres"
	"github.com/givepoint/givepoint/internal/repository"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewClient,

			// Repositories
			repository.NewUserRepository,
			repository.NewCampaignRepository,
			repository.NewDonationRepository,
			repository.NewSubscriptionRepository,
			repository.NewInvoiceRepository,

			// Gateway services
			stripe.NewClient,
			stripe.NewCustomerService,
			stripe.NewCatalogService,
			stripe.NewIntentService,
			stripe.NewSubscriptionService,
			webhook.NewHandler,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	intentSvc *stripe.IntentService,
	subscriptionSvc *stripe.SubscriptionService,
	webhookProcessor *webhook.Handler,
	campaignRepo campaign.Repository,
	donationRepo donation.Repository,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(),
		Payment:  v1.NewPaymentHandler(intentSvc, subscriptionSvc, log),
		Webhook:  v1.NewWebhookHandler(webhookProcessor, log),
		Campaign: v1.NewCampaignHandler(campaignRepo, donationRepo, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/givepoint/givepoint/internal/api/v1"
	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Payment  *v1.PaymentHandler
	Webhook  *v1.WebhookHandler
	Campaign *v1.CampaignHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")

	// Webhook deliveries are authenticated by payload signature
	v1Group.POST("/webhooks/stripe", handlers.Webhook.HandleStripeWebhook)

	// Campaign reads are public
	campaigns := v1Group.Group("/campaigns")
	{
		campaigns.GET("/:id", handlers.Campaign.GetCampaign)
		campaigns.GET("/:id/donations", handlers.Campaign.ListDonations)
	}

	// Donor-facing payment routes require a bearer token
	private := v1Group.Group("")
	private.Use(middleware.AuthenticateMiddleware(cfg, logger))
	{
		payments := private.Group("/payments")
		payments.POST("/intent", handlers.Payment.CreatePaymentIntent)
		payments.POST("/setup-intent", handlers.Payment.CreateSetupIntent)

		private.POST("/subscriptions", handlers.Payment.CreateSubscription)
	}

	return router
}

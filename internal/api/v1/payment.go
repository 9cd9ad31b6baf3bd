package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/givepoint/givepoint/internal/api/dto"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/gateway/stripe"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
)

// PaymentHandler exposes the donation payment endpoints.
type PaymentHandler struct {
	intentSvc       *stripe.IntentService
	subscriptionSvc *stripe.SubscriptionService
	logger          *logger.Logger
}

func NewPaymentHandler(intentSvc *stripe.IntentService, subscriptionSvc *stripe.SubscriptionService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		intentSvc:       intentSvc,
		subscriptionSvc: subscriptionSvc,
		logger:          logger,
	}
}

// CreatePaymentIntent starts a one-time donation for the authenticated
// donor and returns what the client SDK needs to confirm it.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.intentSvc.CreatePaymentIntent(ctx,
		types.GetUserID(ctx), types.GetUserEmail(ctx), types.GetDonorName(ctx), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateSetupIntent returns a client secret for saving a payment method
// ahead of a recurring donation.
func (h *PaymentHandler) CreateSetupIntent(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.intentSvc.CreateSetupIntent(ctx,
		types.GetUserID(ctx), types.GetUserEmail(ctx), types.GetDonorName(ctx))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateSubscription starts a recurring donation for the authenticated
// donor.
func (h *PaymentHandler) CreateSubscription(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.subscriptionSvc.CreateSubscription(ctx,
		types.GetUserID(ctx), types.GetUserEmail(ctx), types.GetDonorName(ctx), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

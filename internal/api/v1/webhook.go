package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/gateway/stripe/webhook"
	"github.com/givepoint/givepoint/internal/logger"
)

// WebhookHandler receives gateway webhook deliveries. The endpoint is
// authenticated by payload signature, not by bearer token.
type WebhookHandler struct {
	processor *webhook.Handler
	logger    *logger.Logger
}

func NewWebhookHandler(processor *webhook.Handler, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		processor: processor,
		logger:    logger,
	}
}

// HandleStripeWebhook verifies and reconciles one event delivery. A 2xx
// acknowledges the delivery; processing failures return 5xx so the
// gateway retries.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read webhook payload").
			Mark(ierr.ErrValidation))
		return
	}

	event, err := h.processor.ParseEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.processor.HandleEvent(c.Request.Context(), event); err != nil {
		h.logger.Errorw("failed to process webhook event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

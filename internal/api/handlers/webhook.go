package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v78"

	"github.com/deechee777/lawlens/backend/pkg/utils"
)

type webhookProcessor interface {
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
	HandleEvent(event stripe.Event) error
}

type WebhookHandler struct {
	payments webhookProcessor
	logger   *logrus.Logger
}

func NewWebhookHandler(payments webhookProcessor, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		payments: payments,
		logger:   logger,
	}
}

// HandleStripeWebhook serves POST /api/webhooks/stripe. The signature is
// verified against the raw body before any processing.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read request body", nil)
		return
	}

	event, err := h.payments.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.WithError(err).Warn("Webhook signature verification failed")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid signature", nil)
		return
	}

	if err := h.payments.HandleEvent(event); err != nil {
		h.logger.WithError(err).WithField("event_type", event.Type).Error("Webhook handler failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Webhook handler failed", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

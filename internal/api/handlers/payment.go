package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

type checkoutCreator interface {
	CreateCheckout(userEmail, questionText string) (*models.CreatePaymentResponse, error)
}

type PaymentHandler struct {
	payments checkoutCreator
	logger   *logrus.Logger
}

func NewPaymentHandler(payments checkoutCreator, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

// HandleCreatePayment serves POST /api/create-payment.
func (h *PaymentHandler) HandleCreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and question are required", nil)
		return
	}

	email := strings.TrimSpace(req.Email)
	question := strings.TrimSpace(req.Question)
	if email == "" || question == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and question are required", nil)
		return
	}

	resp, err := h.payments.CreateCheckout(email, question)
	if err != nil {
		h.logger.WithError(err).Error("Payment creation failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create payment", nil)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"question_id": resp.QuestionID,
		"user_email":  email,
	}).Info("Checkout session created")

	c.JSON(http.StatusOK, resp)
}

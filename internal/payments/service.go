package payments

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/deechee777/lawlens/backend/internal/models"
)

// Config holds the Stripe credentials and checkout pricing.
type Config struct {
	SecretKey     string
	WebhookSecret string
	PriceCents    int64
	PublicBaseURL string
	AdminEmail    string
}

type gateway interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCustomer(id string) (*stripe.Customer, error)
}

type stripeGateway struct {
	api *client.API
}

func (g *stripeGateway) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return g.api.CheckoutSessions.New(params)
}

func (g *stripeGateway) GetCustomer(id string) (*stripe.Customer, error) {
	return g.api.Customers.Get(id, nil)
}

type notifier interface {
	SendNewPaidQuestion(adminEmail, questionText, userEmail, questionID, paymentID string) error
}

// Service routes unanswered questions through Stripe checkout and reconciles
// payment state from webhook events.
type Service struct {
	cfg       Config
	gateway   gateway
	questions models.QuestionRepository
	payments  models.PaymentRepository
	notifier  notifier
	logger    *logrus.Logger
}

func NewService(cfg Config, questions models.QuestionRepository, payments models.PaymentRepository, notifier notifier, logger *logrus.Logger) *Service {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &Service{
		cfg:       cfg,
		gateway:   &stripeGateway{api: api},
		questions: questions,
		payments:  payments,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateCheckout stores the pending question, opens a Stripe checkout session
// for it and records the payment. The payment record failure is non-fatal
// since the webhook reconciles it later.
func (s *Service) CreateCheckout(userEmail, questionText string) (*models.CreatePaymentResponse, error) {
	question := &models.Question{
		QuestionText: questionText,
		Status:       models.StatusPending,
		IsPublic:     false,
	}
	if err := s.questions.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	description := questionText
	if len(description) > 100 {
		description = description[:100] + "..."
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String("Legal Question Research"),
					Description: stripe.String(fmt.Sprintf("Research and answer for: %q", description)),
				},
				UnitAmount: stripe.Int64(s.cfg.PriceCents),
			},
			Quantity: stripe.Int64(1),
		}},
		CustomerEmail: stripe.String(userEmail),
		SuccessURL:    stripe.String(s.cfg.PublicBaseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.cfg.PublicBaseURL + "/search?q=" + url.QueryEscape(questionText)),
	}
	params.AddMetadata("question_id", question.ID)
	params.AddMetadata("user_email", userEmail)
	params.AddMetadata("question_text", questionText)

	session, err := s.gateway.CreateCheckoutSession(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	payment := &models.Payment{
		UserEmail:       userEmail,
		QuestionID:      &question.ID,
		AmountCents:     s.cfg.PriceCents,
		PaymentType:     models.PaymentOneTime,
		StripePaymentID: &session.ID,
	}
	if err := s.payments.Create(payment); err != nil {
		s.logger.WithError(err).WithField("question_id", question.ID).
			Error("Failed to record payment, webhook will reconcile")
	}

	return &models.CreatePaymentResponse{
		CheckoutURL: session.URL,
		QuestionID:  question.ID,
	}, nil
}

// VerifyEvent checks the webhook signature and decodes the event.
func (s *Service) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, s.cfg.WebhookSecret)
}

// HandleEvent dispatches a verified webhook event. Unhandled event types are
// acknowledged without action.
func (s *Service) HandleEvent(event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return s.handleCheckoutCompleted(&session)

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("failed to parse invoice: %w", err)
		}
		return s.handleSubscriptionPayment(&invoice)

	case "customer.subscription.updated", "customer.subscription.deleted":
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		return s.handleSubscriptionUpdate(&subscription)

	default:
		s.logger.WithField("event_type", event.Type).Debug("Unhandled Stripe event")
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	fields := map[string]interface{}{}
	if session.PaymentIntent != nil {
		fields["stripe_payment_id"] = session.PaymentIntent.ID
	}
	if session.Customer != nil {
		fields["stripe_customer_id"] = session.Customer.ID
	}

	if len(fields) > 0 {
		if err := s.payments.UpdateByStripePaymentID(session.ID, fields); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
	}

	questionID := session.Metadata["question_id"]
	userEmail := session.Metadata["user_email"]
	questionText := session.Metadata["question_text"]

	paymentID := session.ID
	if session.PaymentIntent != nil {
		paymentID = session.PaymentIntent.ID
	}

	if s.notifier != nil && s.cfg.AdminEmail != "" {
		if err := s.notifier.SendNewPaidQuestion(s.cfg.AdminEmail, questionText, userEmail, questionID, paymentID); err != nil {
			s.logger.WithError(err).Error("Failed to send paid question notification")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"question_id": questionID,
		"payment_id":  paymentID,
	}).Info("Checkout completed")
	return nil
}

func (s *Service) handleSubscriptionPayment(invoice *stripe.Invoice) error {
	if invoice.Customer == nil {
		return nil
	}

	customer, err := s.gateway.GetCustomer(invoice.Customer.ID)
	if err != nil {
		return fmt.Errorf("failed to retrieve customer: %w", err)
	}
	if customer.Email == "" {
		return nil
	}

	return s.payments.UpsertSubscription(customer.Email, customer.ID, invoice.ID, invoice.AmountPaid, models.SubscriptionActive)
}

func (s *Service) handleSubscriptionUpdate(subscription *stripe.Subscription) error {
	if subscription.Customer == nil {
		return nil
	}

	var status string
	switch subscription.Status {
	case stripe.SubscriptionStatusActive:
		status = models.SubscriptionActive
	case stripe.SubscriptionStatusCanceled:
		status = models.SubscriptionCancelled
	case stripe.SubscriptionStatusPastDue:
		status = models.SubscriptionPastDue
	default:
		status = models.SubscriptionInactive
	}

	return s.payments.UpdateSubscriptionStatusByCustomer(subscription.Customer.ID, status)
}

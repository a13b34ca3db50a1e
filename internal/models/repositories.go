package models

import (
	"context"
	"time"
)

// Database interfaces for repository pattern
type QuestionRepository interface {
	Create(question *Question) error
	GetByID(id string) (*Question, error)
	ExistsByText(questionText string) (bool, error)
	GetByIDWithPayments(id string) (*Question, error)
	List(status string, limit int) ([]Question, error)
	Recent(limit int) ([]Question, error)
	Update(question *Question) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
	CountAll() (int64, error)
	CountByStatus(status string) (int64, error)

	// Search primitives used by the layered search engine
	SearchFullText(ctx context.Context, tsQuery string, limit int) ([]Question, error)
	FindAnswered(ctx context.Context, terms []string, excludeIDs []string, limit int) ([]Question, error)
	SearchQuestionText(ctx context.Context, query string, limit int) ([]Question, error)
}

type PaymentRepository interface {
	Create(payment *Payment) error
	GetByStripePaymentID(stripePaymentID string) (*Payment, error)
	UpdateByStripePaymentID(stripePaymentID string, fields map[string]interface{}) error
	UpsertSubscription(userEmail, customerID, subscriptionID string, amountCents int64, status string) error
	UpdateSubscriptionStatusByCustomer(customerID, status string) error
	ListAll() ([]Payment, error)
}

type BadDecisionRepository interface {
	Create(decision *BadDecision) error
	GetBySlug(slug string) (*BadDecision, error)
	SlugExists(slug string) (bool, error)
	CountAll() (int64, error)
	CountSince(since time.Time) (int64, error)
	AverageRiskScore() (float64, error)
}

package models

// GORM models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question status values
const (
	StatusPending     = "pending"
	StatusResearching = "researching"
	StatusAnswered    = "answered"
)

// Payment type values
const (
	PaymentOneTime      = "one_time"
	PaymentSubscription = "subscription"
)

// Subscription status values
const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
	SubscriptionPastDue   = "past_due"
)

// Question represents a legal question in the curated answer database
type Question struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionText string     `json:"question_text" gorm:"not null"`
	AnswerText   *string    `json:"answer_text"`
	SourceURL    *string    `json:"source_url"`
	SourceTitle  *string    `json:"source_title"`
	IsPublic     bool       `json:"is_public" gorm:"default:false"`
	Status       string     `json:"status" gorm:"default:'pending';check:status IN ('pending','researching','answered')"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Associations
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:QuestionID"`
}

// Payment represents a Stripe payment tied to a question
type Payment struct {
	ID                 string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserEmail          string    `json:"user_email" gorm:"not null"`
	StripePaymentID    *string   `json:"stripe_payment_id" gorm:"index"`
	StripeCustomerID   *string   `json:"stripe_customer_id"`
	QuestionID         *string   `json:"question_id" gorm:"type:uuid"`
	AmountCents        int64     `json:"amount_cents"`
	Currency           string    `json:"currency" gorm:"default:'usd'"`
	PaymentType        string    `json:"payment_type" gorm:"default:'one_time';check:payment_type IN ('one_time','subscription')"`
	SubscriptionStatus *string   `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BadDecision represents one scored run of the Bad Decision Calculator
type BadDecision struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	DecisionText  string    `json:"decision_text" gorm:"not null"`
	RiskScore     int       `json:"risk_score"`
	AIExplanation string    `json:"ai_explanation"`
	ShareSlug     *string   `json:"share_slug" gorm:"uniqueIndex"`
	IPAddress     *string   `json:"ip_address"`
	UserAgent     *string   `json:"user_agent"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName methods for custom table names
func (Question) TableName() string    { return "questions" }
func (Payment) TableName() string     { return "payments" }
func (BadDecision) TableName() string { return "bad_decisions" }

// Model validation methods
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return fmt.Errorf("question text is required")
	}
	validStatuses := map[string]bool{
		StatusPending:     true,
		StatusResearching: true,
		StatusAnswered:    true,
	}
	if !validStatuses[q.Status] {
		return fmt.Errorf("invalid status: %s", q.Status)
	}
	return nil
}

func (p *Payment) Validate() error {
	if p.UserEmail == "" {
		return fmt.Errorf("user email is required")
	}
	if p.AmountCents < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if p.PaymentType != PaymentOneTime && p.PaymentType != PaymentSubscription {
		return fmt.Errorf("invalid payment type: %s", p.PaymentType)
	}
	return nil
}

func (b *BadDecision) Validate() error {
	if b.DecisionText == "" {
		return fmt.Errorf("decision text is required")
	}
	if b.RiskScore < 0 || b.RiskScore > 100 {
		return fmt.Errorf("risk score out of range: %d", b.RiskScore)
	}
	return nil
}

// GORM hooks
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Status == "" {
		q.Status = StatusPending
	}
	return q.Validate()
}

func (q *Question) BeforeUpdate(tx *gorm.DB) error {
	// Field-map updates run this hook on a zero model; only validate full saves.
	if q.QuestionText == "" {
		return nil
	}
	return q.Validate()
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Currency == "" {
		p.Currency = "usd"
	}
	if p.PaymentType == "" {
		p.PaymentType = PaymentOneTime
	}
	return p.Validate()
}

func (b *BadDecision) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return b.Validate()
}

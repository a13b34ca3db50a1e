package repository

import (
	"context"
	"time"

	"github.com/deechee777/lawlens/backend/internal/models"
	"gorm.io/gorm"
)

// QuestionRepositoryImpl implements QuestionRepository
type QuestionRepositoryImpl struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) models.QuestionRepository {
	return &QuestionRepositoryImpl{db: db}
}

func (r *QuestionRepositoryImpl) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *QuestionRepositoryImpl) GetByID(id string) (*models.Question, error) {
	var question models.Question
	err := r.db.Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepositoryImpl) ExistsByText(questionText string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Question{}).
		Where("question_text = ?", questionText).
		Count(&count).Error
	return count > 0, err
}

func (r *QuestionRepositoryImpl) GetByIDWithPayments(id string) (*models.Question, error) {
	var question models.Question
	err := r.db.Preload("Payments").
		Where("id = ?", id).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepositoryImpl) List(status string, limit int) ([]models.Question, error) {
	var questions []models.Question
	q := r.db.Preload("Payments").
		Order("created_at DESC").
		Limit(limit)

	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	err := q.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepositoryImpl) Recent(limit int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Preload("Payments").
		Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepositoryImpl) Update(question *models.Question) error {
	return r.db.Save(question).Error
}

func (r *QuestionRepositoryImpl) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Question{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *QuestionRepositoryImpl) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Question{}).Error
}

func (r *QuestionRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Question{}).Count(&count).Error
	return count, err
}

func (r *QuestionRepositoryImpl) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Question{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SearchFullText runs the indexed tsquery search. The search_vector column,
// its index and the maintaining trigger are created by the SQL migrations.
// Public/answered filtering happens inside the query so callers never see
// unpublished rows from this path.
func (r *QuestionRepositoryImpl) SearchFullText(ctx context.Context, tsQuery string, limit int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, question_text, answer_text, source_url, source_title,
		       is_public, status, created_at, updated_at
		FROM questions
		WHERE search_vector @@ to_tsquery('english', ?)
		  AND is_public = true
		  AND status = 'answered'
		ORDER BY ts_rank(search_vector, to_tsquery('english', ?)) DESC
		LIMIT ?
	`, tsQuery, tsQuery, limit).Scan(&questions).Error
	return questions, err
}

// FindAnswered fetches public answered questions where any term appears as a
// case-insensitive substring of the question or answer text, newest first.
func (r *QuestionRepositoryImpl) FindAnswered(ctx context.Context, terms []string, excludeIDs []string, limit int) ([]models.Question, error) {
	var questions []models.Question

	q := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Where("status = ?", models.StatusAnswered)

	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	if len(terms) > 0 {
		pattern := "%" + terms[0] + "%"
		cond := r.db.Where("question_text ILIKE ?", pattern).
			Or("answer_text ILIKE ?", pattern)
		for _, term := range terms[1:] {
			pattern = "%" + term + "%"
			cond = cond.Or("question_text ILIKE ?", pattern).
				Or("answer_text ILIKE ?", pattern)
		}
		q = q.Where(cond)
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

// SearchQuestionText is the degraded path: one substring match against the
// question text only.
func (r *QuestionRepositoryImpl) SearchQuestionText(ctx context.Context, query string, limit int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Where("status = ?", models.StatusAnswered).
		Where("question_text ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

// PaymentRepositoryImpl implements PaymentRepository
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) models.PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) GetByStripePaymentID(stripePaymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("stripe_payment_id = ?", stripePaymentID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) UpdateByStripePaymentID(stripePaymentID string, fields map[string]interface{}) error {
	return r.db.Model(&models.Payment{}).
		Where("stripe_payment_id = ?", stripePaymentID).
		Updates(fields).Error
}

func (r *PaymentRepositoryImpl) UpsertSubscription(userEmail, customerID, subscriptionID string, amountCents int64, status string) error {
	return r.db.Exec(`
		INSERT INTO payments (id, user_email, stripe_customer_id, stripe_payment_id,
		                      amount_cents, currency, payment_type, subscription_status,
		                      created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, ?, 'usd', 'subscription', ?, NOW(), NOW())
		ON CONFLICT (stripe_payment_id)
		DO UPDATE SET
			subscription_status = EXCLUDED.subscription_status,
			amount_cents = EXCLUDED.amount_cents,
			updated_at = NOW()
	`, userEmail, customerID, subscriptionID, amountCents, status).Error
}

func (r *PaymentRepositoryImpl) UpdateSubscriptionStatusByCustomer(customerID, status string) error {
	return r.db.Model(&models.Payment{}).
		Where("stripe_customer_id = ?", customerID).
		Where("payment_type = ?", models.PaymentSubscription).
		Update("subscription_status", status).Error
}

func (r *PaymentRepositoryImpl) ListAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Find(&payments).Error
	return payments, err
}

// BadDecisionRepositoryImpl implements BadDecisionRepository
type BadDecisionRepositoryImpl struct {
	db *gorm.DB
}

func NewBadDecisionRepository(db *gorm.DB) models.BadDecisionRepository {
	return &BadDecisionRepositoryImpl{db: db}
}

func (r *BadDecisionRepositoryImpl) Create(decision *models.BadDecision) error {
	return r.db.Create(decision).Error
}

func (r *BadDecisionRepositoryImpl) GetBySlug(slug string) (*models.BadDecision, error) {
	var decision models.BadDecision
	err := r.db.Where("share_slug = ?", slug).First(&decision).Error
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

func (r *BadDecisionRepositoryImpl) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BadDecision{}).
		Where("share_slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *BadDecisionRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.BadDecision{}).Count(&count).Error
	return count, err
}

func (r *BadDecisionRepositoryImpl) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.BadDecision{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *BadDecisionRepositoryImpl) AverageRiskScore() (float64, error) {
	var avg *float64
	err := r.db.Model(&models.BadDecision{}).
		Select("AVG(risk_score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	Question    models.QuestionRepository
	Payment     models.PaymentRepository
	BadDecision models.BadDecisionRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Question:    NewQuestionRepository(db),
		Payment:     NewPaymentRepository(db),
		BadDecision: NewBadDecisionRepository(db),
	}
}

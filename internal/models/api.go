package models

// SearchResult is a question plus its derived relevance score. The score is
// only populated by the fuzzy and keyword strategies; full-text and
// simple-fallback rows carry zero.
type SearchResult struct {
	Question
	RelevanceScore int `json:"relevance_score,omitempty"`
}

type SearchSingleResponse struct {
	Answer         *SearchResult `json:"answer"`
	Found          bool          `json:"found"`
	RelevanceScore int           `json:"relevance_score,omitempty"`
	Message        string        `json:"message,omitempty"`
}

type SearchMultipleResponse struct {
	Answers []SearchResult `json:"answers"`
	Found   bool           `json:"found"`
	Count   int            `json:"count"`
	Query   string         `json:"query"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User        AdminUserInfo `json:"user"`
	SessionInfo SessionInfo   `json:"sessionInfo"`
}

type AdminUserInfo struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SessionInfo struct {
	SessionID      string `json:"sessionId"`
	ActiveSessions int    `json:"activeSessions"`
}

type CreateQuestionRequest struct {
	QuestionText string  `json:"question_text" binding:"required"`
	AnswerText   *string `json:"answer_text"`
	SourceURL    *string `json:"source_url"`
	IsPublic     *bool   `json:"is_public"`
}

type UpdateQuestionRequest struct {
	ID           string  `json:"id" binding:"required"`
	QuestionText *string `json:"question_text"`
	AnswerText   *string `json:"answer_text"`
	SourceURL    *string `json:"source_url"`
	IsPublic     *bool   `json:"is_public"`
	Status       *string `json:"status"`
}

type BadDecisionRequest struct {
	DecisionText string `json:"decision_text" binding:"required"`
}

type BadDecisionResponse struct {
	RiskScore   int     `json:"risk_score"`
	Explanation string  `json:"explanation"`
	ShareSlug   *string `json:"share_slug"`
	ID          string  `json:"id"`
}

type SharedDecisionResponse struct {
	DecisionText string `json:"decisionText"`
	RiskScore    int    `json:"riskScore"`
	Explanation  string `json:"explanation"`
	CreatedAt    string `json:"createdAt"`
}

type CreatePaymentRequest struct {
	Email    string `json:"email" binding:"required"`
	Question string `json:"question" binding:"required"`
}

type CreatePaymentResponse struct {
	CheckoutURL string `json:"checkout_url"`
	QuestionID  string `json:"question_id"`
}

type AdminStats struct {
	TotalQuestions      int64   `json:"totalQuestions"`
	AnsweredQuestions   int64   `json:"answeredQuestions"`
	PendingQuestions    int64   `json:"pendingQuestions"`
	TotalRevenue        float64 `json:"totalRevenue"`
	ActiveSubscriptions int64   `json:"activeSubscriptions"`
	OneTimePayments     int64   `json:"oneTimePayments"`
	TotalBadDecisions   int64   `json:"totalBadDecisions"`
	BadDecisionsToday   int64   `json:"badDecisionsToday"`
	AverageRiskScore    int     `json:"averageRiskScore"`
}

type AdminStatsResponse struct {
	Stats           AdminStats `json:"stats"`
	RecentQuestions []Question `json:"recentQuestions"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

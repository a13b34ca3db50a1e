package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

type answerNotifier interface {
	SendQuestionAnswered(userEmail, question, answer string, sourceURL *string) error
}

type QuestionHandler struct {
	questions models.QuestionRepository
	notifier  answerNotifier
	logger    *logrus.Logger
}

func NewQuestionHandler(questions models.QuestionRepository, notifier answerNotifier, logger *logrus.Logger) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		notifier:  notifier,
		logger:    logger,
	}
}

// HandleList serves GET /api/admin/questions with optional status filter.
func (h *QuestionHandler) HandleList(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	questions, err := h.questions.List(status, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch questions")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch questions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// HandleCreate serves POST /api/admin/questions. A question arriving with an
// answer is immediately marked answered.
func (h *QuestionHandler) HandleCreate(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Question text is required", nil)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	status := models.StatusPending
	if req.AnswerText != nil && *req.AnswerText != "" {
		status = models.StatusAnswered
	}

	question := &models.Question{
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		SourceURL:    req.SourceURL,
		IsPublic:     isPublic,
		Status:       status,
	}

	if err := h.questions.Create(question); err != nil {
		h.logger.WithError(err).Error("Failed to create question")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create question", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

// HandleUpdate serves PUT /api/admin/questions. Supplying an answer promotes
// the question to answered, and the first-time transition notifies the payer
// by email without failing the request on delivery errors.
func (h *QuestionHandler) HandleUpdate(c *gin.Context) {
	var req models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Question ID is required", nil)
		return
	}

	current, err := h.questions.GetByIDWithPayments(req.ID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Question not found", nil)
		return
	}

	fields := map[string]interface{}{}
	if req.QuestionText != nil {
		fields["question_text"] = *req.QuestionText
	}
	if req.AnswerText != nil {
		fields["answer_text"] = *req.AnswerText
	}
	if req.SourceURL != nil {
		fields["source_url"] = *req.SourceURL
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	answered := req.AnswerText != nil && *req.AnswerText != ""
	if answered && (req.Status == nil || *req.Status != models.StatusAnswered) {
		fields["status"] = models.StatusAnswered
	}

	if err := h.questions.UpdateFields(req.ID, fields); err != nil {
		h.logger.WithError(err).Error("Failed to update question")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update question", err)
		return
	}

	question, err := h.questions.GetByID(req.ID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update question", err)
		return
	}

	if answered && current.Status != models.StatusAnswered && len(current.Payments) > 0 && h.notifier != nil {
		payment := current.Payments[0]
		if err := h.notifier.SendQuestionAnswered(payment.UserEmail, question.QuestionText, *req.AnswerText, req.SourceURL); err != nil {
			h.logger.WithError(err).WithField("question_id", req.ID).Error("Failed to send answer email")
		} else {
			h.logger.WithFields(logrus.Fields{
				"question_id": req.ID,
				"user_email":  payment.UserEmail,
			}).Info("Answer notification sent")
		}
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

// HandleDelete serves DELETE /api/admin/questions?id=...
func (h *QuestionHandler) HandleDelete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Question ID is required", nil)
		return
	}

	if err := h.questions.Delete(id); err != nil {
		h.logger.WithError(err).Error("Failed to delete question")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete question", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/decision"
	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

const (
	minDecisionLength = 10
	maxDecisionLength = 500
	shareSlugLength   = 8
	slugAttempts      = 5
)

type analyzer interface {
	Analyze(ctx context.Context, decisionText string) *decision.Result
}

type BadDecisionHandler struct {
	analyzer  analyzer
	decisions models.BadDecisionRepository
	logger    *logrus.Logger
}

func NewBadDecisionHandler(analyzer analyzer, decisions models.BadDecisionRepository, logger *logrus.Logger) *BadDecisionHandler {
	return &BadDecisionHandler{
		analyzer:  analyzer,
		decisions: decisions,
		logger:    logger,
	}
}

// HandleAnalyze serves POST /api/bad-decision. A storage failure still
// returns the analysis, just without a share slug.
func (h *BadDecisionHandler) HandleAnalyze(c *gin.Context) {
	var req models.BadDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Decision text must be at least 10 characters long", nil)
		return
	}

	decisionText := strings.TrimSpace(req.DecisionText)
	if len(decisionText) < minDecisionLength {
		utils.ErrorResponse(c, http.StatusBadRequest, "Decision text must be at least 10 characters long", nil)
		return
	}
	if len(req.DecisionText) > maxDecisionLength {
		utils.ErrorResponse(c, http.StatusBadRequest, "Decision text must be less than 500 characters", nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := h.analyzer.Analyze(ctx, decisionText)

	slug := h.uniqueShareSlug()

	ip := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")

	record := &models.BadDecision{
		DecisionText:  decisionText,
		RiskScore:     result.RiskScore,
		AIExplanation: result.Explanation,
		ShareSlug:     &slug,
		IPAddress:     &ip,
		UserAgent:     &userAgent,
	}

	if err := h.decisions.Create(record); err != nil {
		h.logger.WithError(err).Error("Failed to store bad decision")
		c.JSON(http.StatusOK, models.BadDecisionResponse{
			RiskScore:   result.RiskScore,
			Explanation: result.Explanation,
			ShareSlug:   nil,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"risk_score": result.RiskScore,
		"fallback":   result.Fallback,
		"share_slug": slug,
	}).Info("Bad decision analyzed")

	c.JSON(http.StatusOK, models.BadDecisionResponse{
		RiskScore:   result.RiskScore,
		Explanation: result.Explanation,
		ShareSlug:   record.ShareSlug,
		ID:          record.ID,
	})
}

// HandleShared serves GET /api/bad-decision?share=... for shared results.
func (h *BadDecisionHandler) HandleShared(c *gin.Context) {
	slug := c.Query("share")
	if slug == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Share slug is required", nil)
		return
	}

	record, err := h.decisions.GetBySlug(slug)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Shared result not found", nil)
		return
	}

	c.JSON(http.StatusOK, models.SharedDecisionResponse{
		DecisionText: record.DecisionText,
		RiskScore:    record.RiskScore,
		Explanation:  record.AIExplanation,
		CreatedAt:    record.CreatedAt.Format(time.RFC3339),
	})
}

// uniqueShareSlug retries a few times on collision, then gives up and reuses
// the last candidate. The unique index catches the pathological case.
func (h *BadDecisionHandler) uniqueShareSlug() string {
	slug := utils.GenerateShareSlug(shareSlugLength)
	for i := 0; i < slugAttempts; i++ {
		exists, err := h.decisions.SlugExists(slug)
		if err != nil || !exists {
			break
		}
		slug = utils.GenerateShareSlug(shareSlugLength)
	}
	return slug
}

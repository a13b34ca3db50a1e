package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/database"
	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/deechee777/lawlens/backend/internal/repository"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

const statsCacheTTL = time.Minute

type StatsHandler struct {
	repos  *repository.RepositoryManager
	cache  *database.Cache
	logger *logrus.Logger
}

func NewStatsHandler(repos *repository.RepositoryManager, cache *database.Cache, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		repos:  repos,
		cache:  cache,
		logger: logger,
	}
}

// HandleStats serves GET /api/admin/stats: question counts, revenue,
// subscription state and Bad Decision Calculator aggregates.
func (h *StatsHandler) HandleStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cached := &models.AdminStatsResponse{}
	if err := h.cache.GetCachedAdminStats(ctx, cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	totalQuestions, err := h.repos.Question.CountAll()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count questions")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	answeredQuestions, err := h.repos.Question.CountByStatus(models.StatusAnswered)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	pendingQuestions, err := h.repos.Question.CountByStatus(models.StatusPending)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	payments, err := h.repos.Payment.ListAll()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	var totalRevenueCents int64
	var activeSubscriptions, oneTimePayments int64
	for _, p := range payments {
		totalRevenueCents += p.AmountCents
		switch p.PaymentType {
		case models.PaymentSubscription:
			if p.SubscriptionStatus != nil && *p.SubscriptionStatus == models.SubscriptionActive {
				activeSubscriptions++
			}
		case models.PaymentOneTime:
			oneTimePayments++
		}
	}

	totalBadDecisions, err := h.repos.BadDecision.CountAll()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	badDecisionsToday, err := h.repos.BadDecision.CountSince(midnight)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	averageRisk, err := h.repos.BadDecision.AverageRiskScore()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	recentQuestions, err := h.repos.Question.Recent(10)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load stats", err)
		return
	}

	response := models.AdminStatsResponse{
		Stats: models.AdminStats{
			TotalQuestions:      totalQuestions,
			AnsweredQuestions:   answeredQuestions,
			PendingQuestions:    pendingQuestions,
			TotalRevenue:        float64(totalRevenueCents) / 100,
			ActiveSubscriptions: activeSubscriptions,
			OneTimePayments:     oneTimePayments,
			TotalBadDecisions:   totalBadDecisions,
			BadDecisionsToday:   badDecisionsToday,
			AverageRiskScore:    int(math.Round(averageRisk)),
		},
		RecentQuestions: recentQuestions,
	}

	if err := h.cache.CacheAdminStats(ctx, &response, statsCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache admin stats")
	}

	c.JSON(http.StatusOK, response)
}

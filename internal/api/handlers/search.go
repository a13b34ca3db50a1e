package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/database"
	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/deechee777/lawlens/backend/internal/search"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

const (
	maxQueryLength  = 500
	maxSearchLimit  = 20
	searchCacheTTL  = 5 * time.Minute
	defaultSearches = 5
)

type SearchHandler struct {
	engine *search.Engine
	cache  *database.Cache
	logger *logrus.Logger
}

func NewSearchHandler(engine *search.Engine, cache *database.Cache, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		engine: engine,
		cache:  cache,
		logger: logger,
	}
}

// HandleSearch serves GET /api/search. The single-match and multiple-match
// modes share validation and the response cache.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	startTime := time.Now()

	query := c.Query("q")
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query parameter is required", nil)
		return
	}

	if len(strings.TrimSpace(query)) < 2 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query must be at least 2 characters long", nil)
		return
	}

	if len(query) > maxQueryLength {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query is too long", nil)
		return
	}

	query = strings.TrimSpace(query)
	multiple := c.Query("multiple") == "true"

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSearches)))
	if err != nil || limit < 1 {
		limit = defaultSearches
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	h.logger.WithFields(logrus.Fields{
		"query":    query,
		"multiple": multiple,
		"limit":    limit,
	}).Info("Processing search request")

	if multiple {
		h.searchMultiple(ctx, c, query, limit, startTime)
		return
	}
	h.searchSingle(ctx, c, query, startTime)
}

func (h *SearchHandler) searchSingle(ctx context.Context, c *gin.Context, query string, startTime time.Time) {
	cacheKey := h.cacheKey(query, false, 1)

	cached := &models.SearchSingleResponse{}
	if err := h.cache.GetCachedSearchResults(ctx, cacheKey, cached); err == nil {
		h.logger.Debug("Search served from cache")
		c.JSON(http.StatusOK, cached)
		return
	}

	match := h.engine.FindBestMatch(ctx, query)

	var response models.SearchSingleResponse
	if match != nil {
		response = models.SearchSingleResponse{
			Answer:         match,
			Found:          true,
			RelevanceScore: match.RelevanceScore,
		}
	} else {
		response = models.SearchSingleResponse{
			Answer:  nil,
			Found:   false,
			Message: "No matching answers found in our database",
		}
	}

	if err := h.cache.CacheSearchResults(ctx, cacheKey, &response, searchCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache search results")
	}

	h.logger.WithFields(logrus.Fields{
		"found":         match != nil,
		"response_time": time.Since(startTime).Milliseconds(),
	}).Info("Search completed")

	c.JSON(http.StatusOK, response)
}

func (h *SearchHandler) searchMultiple(ctx context.Context, c *gin.Context, query string, limit int, startTime time.Time) {
	cacheKey := h.cacheKey(query, true, limit)

	cached := &models.SearchMultipleResponse{}
	if err := h.cache.GetCachedSearchResults(ctx, cacheKey, cached); err == nil {
		h.logger.Debug("Search served from cache")
		c.JSON(http.StatusOK, cached)
		return
	}

	results := h.engine.Search(ctx, query, limit)

	response := models.SearchMultipleResponse{
		Answers: results,
		Found:   len(results) > 0,
		Count:   len(results),
		Query:   query,
	}

	if err := h.cache.CacheSearchResults(ctx, cacheKey, &response, searchCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache search results")
	}

	h.logger.WithFields(logrus.Fields{
		"results_count": len(results),
		"response_time": time.Since(startTime).Milliseconds(),
	}).Info("Search completed")

	c.JSON(http.StatusOK, response)
}

func (h *SearchHandler) cacheKey(query string, multiple bool, limit int) string {
	mode := "single"
	if multiple {
		mode = "multi:" + strconv.Itoa(limit)
	}
	return utils.CacheKeyHash(mode + ":" + strings.ToLower(query))
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deechee777/lawlens/backend/internal/decision"
	"github.com/deechee777/lawlens/backend/internal/models"
)

type fakeAnalyzer struct {
	result *decision.Result
	lastIn string
}

func (a *fakeAnalyzer) Analyze(ctx context.Context, decisionText string) *decision.Result {
	a.lastIn = decisionText
	return a.result
}

type fakeDecisionRepo struct {
	models.BadDecisionRepository
	created   []*models.BadDecision
	createErr error
	bySlug    map[string]*models.BadDecision
	taken     map[string]bool
}

func (r *fakeDecisionRepo) Create(d *models.BadDecision) error {
	if r.createErr != nil {
		return r.createErr
	}
	d.ID = "bd-1"
	r.created = append(r.created, d)
	return nil
}

func (r *fakeDecisionRepo) GetBySlug(slug string) (*models.BadDecision, error) {
	if d, ok := r.bySlug[slug]; ok {
		return d, nil
	}
	return nil, assert.AnError
}

func (r *fakeDecisionRepo) SlugExists(slug string) (bool, error) {
	return r.taken[slug], nil
}

func newBadDecisionRouter(t *testing.T, analyzer *fakeAnalyzer, repo *fakeDecisionRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewBadDecisionHandler(analyzer, repo, testLogger())
	router := gin.New()
	router.POST("/api/bad-decision", handler.HandleAnalyze)
	router.GET("/api/bad-decision", handler.HandleShared)
	return router
}

func TestHandleAnalyze_Validation(t *testing.T) {
	router := newBadDecisionRouter(t, &fakeAnalyzer{}, &fakeDecisionRepo{})

	w := doJSON(router, http.MethodPost, "/api/bad-decision", `{"decision_text":"too short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	long := strings.Repeat("x", 501)
	w = doJSON(router, http.MethodPost, "/api/bad-decision", `{"decision_text":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_StoresAndReturnsSlug(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &decision.Result{RiskScore: 73, Explanation: "Bold move."}}
	repo := &fakeDecisionRepo{}
	router := newBadDecisionRouter(t, analyzer, repo)

	w := doJSON(router, http.MethodPost, "/api/bad-decision",
		`{"decision_text":"quit my job to sell artisanal candles"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BadDecisionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 73, resp.RiskScore)
	assert.Equal(t, "Bold move.", resp.Explanation)
	require.NotNil(t, resp.ShareSlug)
	assert.Len(t, *resp.ShareSlug, 8)
	assert.Equal(t, "bd-1", resp.ID)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "quit my job to sell artisanal candles", repo.created[0].DecisionText)
	assert.NotNil(t, repo.created[0].IPAddress)
	assert.Equal(t, "quit my job to sell artisanal candles", analyzer.lastIn)
}

func TestHandleAnalyze_StorageFailureStillReturnsAnalysis(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &decision.Result{RiskScore: 40, Explanation: "Eh."}}
	repo := &fakeDecisionRepo{createErr: assert.AnError}
	router := newBadDecisionRouter(t, analyzer, repo)

	w := doJSON(router, http.MethodPost, "/api/bad-decision",
		`{"decision_text":"adopt twelve raccoons at once"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BadDecisionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40, resp.RiskScore)
	assert.Nil(t, resp.ShareSlug)
}

func TestHandleShared(t *testing.T) {
	repo := &fakeDecisionRepo{bySlug: map[string]*models.BadDecision{
		"abc12345": {
			DecisionText:  "text my ex",
			RiskScore:     88,
			AIExplanation: "No.",
			CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}}
	router := newBadDecisionRouter(t, &fakeAnalyzer{}, repo)

	w := doJSON(router, http.MethodGet, "/api/bad-decision?share=abc12345", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SharedDecisionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 88, resp.RiskScore)
	assert.Equal(t, "text my ex", resp.DecisionText)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/api/bad-decision?share=missing", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/api/bad-decision", "").Code)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deechee777/lawlens/backend/internal/auth"
	"github.com/deechee777/lawlens/backend/internal/middleware"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

func newLoginRouter(t *testing.T) (*gin.Engine, *auth.Authenticator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authenticator := auth.New(auth.Config{
		AdminEmail:    "admin@lawlens.test",
		AdminPassword: "hunter2-but-longer",
		JWTSecret:     "test-secret-test-secret-test-secret",
	}, testLogger())

	handler := NewLoginHandler(authenticator, testLogger())

	router := gin.New()
	router.POST("/api/admin/login", handler.HandleLogin)
	router.DELETE("/api/admin/login", handler.HandleLogout)
	router.GET("/api/admin/protected", middleware.AdminAuth(authenticator), func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "ok", middleware.AdminUserFrom(c))
	})
	return router, authenticator
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	// Distinct IPs per test run are not needed; gin falls back to the
	// request RemoteAddr which httptest keeps constant.
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("admin_token cookie not set")
	return nil
}

func TestHandleLogin_Validation(t *testing.T) {
	router, _ := newLoginRouter(t)

	assert.Equal(t, http.StatusBadRequest, postLogin(router, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(router, `{"email":"a@b.c"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(router, `not json`).Code)
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	router, _ := newLoginRouter(t)

	w := postLogin(router, `{"email":"admin@lawlens.test","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleLogin_Success(t *testing.T) {
	router, _ := newLoginRouter(t)

	w := postLogin(router, `{"email":"admin@lawlens.test","password":"hunter2-but-longer"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "admin@lawlens.test", user["email"])
	assert.Equal(t, "admin", user["role"])

	sessionInfo := data["sessionInfo"].(map[string]interface{})
	assert.Len(t, sessionInfo["sessionId"], 8)
	assert.Equal(t, float64(1), sessionInfo["activeSessions"])
}

func TestHandleLogin_RateLimited(t *testing.T) {
	router, _ := newLoginRouter(t)

	for i := 0; i < 5; i++ {
		postLogin(router, `{"email":"admin@lawlens.test","password":"wrong"}`)
	}
	w := postLogin(router, `{"email":"admin@lawlens.test","password":"hunter2-but-longer"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAdminAuthMiddleware(t *testing.T) {
	router, _ := newLoginRouter(t)

	// No session.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With a fresh session.
	login := postLogin(router, `{"email":"admin@lawlens.test","password":"hunter2-but-longer"}`)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(t, login)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/protected", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleLogout(t *testing.T) {
	router, authenticator := newLoginRouter(t)

	login := postLogin(router, `{"email":"admin@lawlens.test","password":"hunter2-but-longer"}`)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(t, login)
	require.Equal(t, 1, authenticator.ActiveSessionCount())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/login", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, authenticator.ActiveSessionCount())
	assert.Negative(t, sessionCookie(t, w).MaxAge)
}

func TestHandleLogout_WithoutSessionStillClearsCookie(t *testing.T) {
	router, _ := newLoginRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/login", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Negative(t, sessionCookie(t, w).MaxAge)
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *time.Time) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	a := New(Config{
		AdminEmail:    "admin@lawlens.test",
		AdminPassword: "hunter2-but-longer",
		JWTSecret:     "test-secret-test-secret-test-secret",
	}, logger)

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return clock }
	return a, &clock
}

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/questions", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	return r
}

func TestVerifyCredentials(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	assert.True(t, a.VerifyCredentials("admin@lawlens.test", "hunter2-but-longer"))
	assert.False(t, a.VerifyCredentials("admin@lawlens.test", "wrong"))
	assert.False(t, a.VerifyCredentials("other@lawlens.test", "hunter2-but-longer"))
}

func TestVerifyCredentials_Unconfigured(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	a := New(Config{}, logger)

	assert.False(t, a.VerifyCredentials("admin@lawlens.test", "anything"))
}

func TestVerifyCredentials_BcryptHashTakesPrecedence(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	a := New(Config{
		AdminEmail:        "admin@lawlens.test",
		AdminPassword:     "ignored-plaintext",
		AdminPasswordHash: string(hash),
		JWTSecret:         "s",
	}, logger)

	assert.True(t, a.VerifyCredentials("admin@lawlens.test", "correct-horse"))
	assert.False(t, a.VerifyCredentials("admin@lawlens.test", "ignored-plaintext"))
}

func TestSessionRoundTrip(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	token, sessionID, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)
	assert.Len(t, sessionID, 64) // 32 bytes, hex encoded

	user := a.VerifyRequest(requestWithToken(token))
	require.NotNil(t, user)
	assert.Equal(t, "admin@lawlens.test", user.Email)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, sessionID, user.SessionID)
}

func TestVerifyRequest_FailsClosed(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	// No cookie at all.
	assert.Nil(t, a.VerifyRequest(httptest.NewRequest(http.MethodGet, "/", nil)))

	// Garbage token.
	assert.Nil(t, a.VerifyRequest(requestWithToken("not.a.token")))

	// Valid signature, but the backing session is gone.
	token, sessionID, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)
	a.DestroySession(sessionID)
	assert.Nil(t, a.VerifyRequest(requestWithToken(token)))
}

func TestVerifyRequest_RejectsForeignSignature(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	other, _ := newTestAuthenticator(t)
	other.cfg.JWTSecret = "a-completely-different-secret!!"

	token, _, err := other.CreateSession("admin@lawlens.test")
	require.NoError(t, err)

	assert.Nil(t, a.VerifyRequest(requestWithToken(token)))
}

func TestIdleTimeout(t *testing.T) {
	a, clock := newTestAuthenticator(t)

	token, sessionID, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)

	// Active just inside the idle window.
	*clock = clock.Add(3 * time.Hour)
	require.NotNil(t, a.VerifyRequest(requestWithToken(token)))

	// Idle for more than four hours since the refreshed activity.
	*clock = clock.Add(4*time.Hour + time.Minute)
	assert.Nil(t, a.VerifyRequest(requestWithToken(token)))

	// The timeout also destroyed the session as a side effect.
	a.mu.Lock()
	_, stillThere := a.sessions[sessionID]
	a.mu.Unlock()
	assert.False(t, stillThere)
}

func TestAbsoluteTimeout_DespiteFreshActivity(t *testing.T) {
	a, clock := newTestAuthenticator(t)

	token, _, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)

	// Keep the session warm every three hours; lastActivity never lapses.
	for i := 0; i < 7; i++ {
		*clock = clock.Add(3 * time.Hour)
		require.NotNil(t, a.VerifyRequest(requestWithToken(token)), "verification %d", i)
	}

	// 24 hours after login the absolute lifetime wins.
	*clock = clock.Add(3*time.Hour + time.Minute)
	assert.Nil(t, a.VerifyRequest(requestWithToken(token)))
}

func TestDestroySession_Idempotent(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	_, sessionID, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)

	a.DestroySession(sessionID)
	assert.NotPanics(t, func() { a.DestroySession(sessionID) })
}

func TestCleanupExpiredSessions(t *testing.T) {
	a, clock := newTestAuthenticator(t)

	_, stale, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)

	*clock = clock.Add(5 * time.Hour)
	freshToken, fresh, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)

	a.CleanupExpiredSessions()

	a.mu.Lock()
	_, staleThere := a.sessions[stale]
	_, freshThere := a.sessions[fresh]
	a.mu.Unlock()

	assert.False(t, staleThere, "idle session should be swept")
	assert.True(t, freshThere)
	require.NotNil(t, a.VerifyRequest(requestWithToken(freshToken)))
}

func TestActiveSessionCount_SweepsFirst(t *testing.T) {
	a, clock := newTestAuthenticator(t)

	_, _, err := a.CreateSession("admin@lawlens.test")
	require.NoError(t, err)
	assert.Equal(t, 1, a.ActiveSessionCount())

	*clock = clock.Add(25 * time.Hour)
	assert.Equal(t, 0, a.ActiveSessionCount())
}

func TestCheckRateLimit_Window(t *testing.T) {
	a, clock := newTestAuthenticator(t)
	ip := "203.0.113.7"

	// Exactly five attempts pass inside the window.
	for i := 1; i <= 5; i++ {
		assert.True(t, a.CheckRateLimit(ip), "attempt %d", i)
	}
	assert.False(t, a.CheckRateLimit(ip), "sixth attempt must be denied")
	assert.False(t, a.CheckRateLimit(ip))

	// A different IP is unaffected.
	assert.True(t, a.CheckRateLimit("198.51.100.2"))

	// After the window elapses the counter resets.
	*clock = clock.Add(lockoutWindow + time.Second)
	assert.True(t, a.CheckRateLimit(ip))
}

func TestCheckRateLimit_NoResetOnSuccess(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ip := "203.0.113.9"

	// Successful logins still count against the window: five checks exhaust
	// it regardless of what happened in between.
	for i := 0; i < 5; i++ {
		require.True(t, a.CheckRateLimit(ip))
		require.True(t, a.VerifyCredentials("admin@lawlens.test", "hunter2-but-longer"))
	}
	assert.False(t, a.CheckRateLimit(ip))
}

func TestJanitorSweepsRateLimitEntries(t *testing.T) {
	a, clock := newTestAuthenticator(t)

	a.CheckRateLimit("203.0.113.7")
	*clock = clock.Add(lockoutWindow + time.Minute)
	a.CleanupExpiredSessions()

	a.mu.Lock()
	_, there := a.loginAttempts["203.0.113.7"]
	a.mu.Unlock()
	assert.False(t, there)
}

func TestSecurityHeaders(t *testing.T) {
	headers := SecurityHeaders()
	assert.Equal(t, "DENY", headers["X-Frame-Options"])
	assert.Equal(t, "nosniff", headers["X-Content-Type-Options"])
	assert.Contains(t, headers["Content-Security-Policy"], "default-src 'self'")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	assert.Equal(t, "unknown", ClientIP(r))

	r.Header.Set("X-Real-Ip", "192.0.2.10")
	assert.Equal(t, "192.0.2.10", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1")
	assert.Equal(t, "203.0.113.1", ClientIP(r))
}

func TestSessionCookies(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	login := a.NewSessionCookie("tok")
	assert.Equal(t, CookieName, login.Name)
	assert.True(t, login.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, login.SameSite)
	assert.Equal(t, 86400, login.MaxAge)

	logout := a.ClearedSessionCookie()
	assert.Empty(t, logout.Value)
	assert.Negative(t, logout.MaxAge)
}

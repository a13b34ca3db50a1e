package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName is the cookie carrying the signed admin token.
	CookieName = "admin_token"

	tokenIssuer   = "lawlens-admin"
	tokenAudience = "lawlens-app"

	sessionLifetime = 24 * time.Hour
	idleTimeout     = 4 * time.Hour

	maxLoginAttempts = 5
	lockoutWindow    = 15 * time.Minute
)

// AdminUser is the verified identity attached to an admin request.
type AdminUser struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId"`
	LoginTime int64  `json:"loginTime"`
}

type session struct {
	email        string
	loginTime    time.Time
	lastActivity time.Time
}

type rateLimitEntry struct {
	count       int
	lastAttempt time.Time
}

type tokenClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId"`
	LoginTime int64  `json:"loginTime"`
	jwt.RegisteredClaims
}

// Config holds the process-wide admin identity and signing material.
type Config struct {
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	SecureCookies     bool
}

// Authenticator issues, verifies and revokes admin sessions and enforces the
// per-IP login rate limit. Session and rate-limit state live in memory and
// are lost on restart, which just forces a re-login.
type Authenticator struct {
	cfg    Config
	logger *logrus.Logger

	mu            sync.Mutex
	sessions      map[string]*session
	loginAttempts map[string]*rateLimitEntry

	now func() time.Time
}

func New(cfg Config, logger *logrus.Logger) *Authenticator {
	return &Authenticator{
		cfg:           cfg,
		logger:        logger,
		sessions:      make(map[string]*session),
		loginAttempts: make(map[string]*rateLimitEntry),
		now:           time.Now,
	}
}

// VerifyCredentials checks the supplied credentials against the configured
// admin identity. When a bcrypt hash is configured it takes precedence over
// the plaintext password; the plaintext path compares in constant time.
func (a *Authenticator) VerifyCredentials(email, password string) bool {
	if a.cfg.AdminEmail == "" || (a.cfg.AdminPassword == "" && a.cfg.AdminPasswordHash == "") {
		a.logger.Error("Admin credentials not configured")
		return false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.cfg.AdminEmail)) == 1

	var passwordOK bool
	if a.cfg.AdminPasswordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.AdminPassword)) == 1
	}

	return emailOK && passwordOK
}

// CreateSession records a new session and returns its signed token. The
// token's own 24h expiry and the session map's bookkeeping are checked
// independently on every verification.
func (a *Authenticator) CreateSession(email string) (token, sessionID string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	sessionID = hex.EncodeToString(raw)

	now := a.now()

	a.mu.Lock()
	a.sessions[sessionID] = &session{
		email:        email,
		loginTime:    now,
		lastActivity: now,
	}
	a.mu.Unlock()

	claims := tokenClaims{
		Email:     email,
		Role:      "admin",
		SessionID: sessionID,
		LoginTime: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionLifetime)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		a.DestroySession(sessionID)
		return "", "", err
	}

	return token, sessionID, nil
}

// VerifyRequest validates the admin token cookie. Every failure mode yields
// the same nil result so callers cannot distinguish a malformed token from an
// expired session.
func (a *Authenticator) VerifyRequest(r *http.Request) *AdminUser {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return a.VerifyToken(cookie.Value)
}

// VerifyToken validates a signed token and its backing session, refreshing
// the session's activity timestamp on success.
func (a *Authenticator) VerifyToken(tokenString string) *AdminUser {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(a.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(func() time.Time { return a.now() }),
	)
	if err != nil {
		a.logger.WithError(err).Debug("Token verification failed")
		return nil
	}

	now := a.now()

	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[claims.SessionID]
	if !ok {
		a.logger.WithField("session_id", ShortSessionID(claims.SessionID)).Debug("Session not found")
		return nil
	}

	if now.Sub(s.loginTime) > sessionLifetime {
		delete(a.sessions, claims.SessionID)
		a.logger.Debug("Session expired")
		return nil
	}

	if now.Sub(s.lastActivity) > idleTimeout {
		delete(a.sessions, claims.SessionID)
		a.logger.Debug("Session inactive too long")
		return nil
	}

	s.lastActivity = now

	return &AdminUser{
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.SessionID,
		LoginTime: claims.LoginTime,
	}
}

// DestroySession removes a session; destroying an unknown id is a no-op.
func (a *Authenticator) DestroySession(sessionID string) {
	a.mu.Lock()
	delete(a.sessions, sessionID)
	a.mu.Unlock()
}

// CleanupExpiredSessions sweeps sessions violating either the absolute or the
// idle rule, and drops rate-limit entries whose lockout window has lapsed.
func (a *Authenticator) CleanupExpiredSessions() {
	now := a.now()

	a.mu.Lock()
	defer a.mu.Unlock()

	for id, s := range a.sessions {
		if now.Sub(s.loginTime) > sessionLifetime || now.Sub(s.lastActivity) > idleTimeout {
			delete(a.sessions, id)
		}
	}

	for ip, entry := range a.loginAttempts {
		if now.Sub(entry.lastAttempt) > lockoutWindow {
			delete(a.loginAttempts, ip)
		}
	}
}

// ActiveSessionCount sweeps, then reports the live session count.
func (a *Authenticator) ActiveSessionCount() int {
	a.CleanupExpiredSessions()

	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// CheckRateLimit allows up to maxLoginAttempts per IP inside the lockout
// window. The counter increments on every allowed call and is only reset by
// window expiry, never by a successful login.
func (a *Authenticator) CheckRateLimit(ip string) bool {
	now := a.now()

	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.loginAttempts[ip]
	if !ok || now.Sub(entry.lastAttempt) > lockoutWindow {
		a.loginAttempts[ip] = &rateLimitEntry{count: 1, lastAttempt: now}
		return true
	}

	if entry.count >= maxLoginAttempts {
		return false
	}

	entry.count++
	entry.lastAttempt = now
	return true
}

// Janitor sweeps expired state on the given interval until ctx is cancelled.
func (a *Authenticator) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.CleanupExpiredSessions()
		}
	}
}

// NewSessionCookie builds the login cookie for a signed token.
func (a *Authenticator) NewSessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   a.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearedSessionCookie builds the logout cookie that expires immediately.
func (a *Authenticator) ClearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// SecurityHeaders returns the fixed header set applied to admin responses.
func SecurityHeaders() map[string]string {
	return map[string]string{
		"X-Frame-Options":         "DENY",
		"X-Content-Type-Options":  "nosniff",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline';",
	}
}

// ShortSessionID truncates a session id for logs and responses.
func ShortSessionID(sessionID string) string {
	if len(sessionID) > 8 {
		return sessionID[:8]
	}
	return sessionID
}

// ClientIP derives the client address from proxy headers: the first
// x-forwarded-for value, then x-real-ip, else "unknown".
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}
	return "unknown"
}

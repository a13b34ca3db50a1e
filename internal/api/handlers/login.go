package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/auth"
	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

type LoginHandler struct {
	authenticator *auth.Authenticator
	logger        *logrus.Logger
}

func NewLoginHandler(authenticator *auth.Authenticator, logger *logrus.Logger) *LoginHandler {
	return &LoginHandler{
		authenticator: authenticator,
		logger:        logger,
	}
}

// HandleLogin serves POST /api/admin/login. The rate limit is checked before
// credentials so lockouts apply to failed and successful attempts alike.
func (h *LoginHandler) HandleLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	clientIP := auth.ClientIP(c.Request)
	if !h.authenticator.CheckRateLimit(clientIP) {
		h.logger.WithField("ip", clientIP).Warn("Login rate limit exceeded")
		utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many login attempts. Please try again in 15 minutes.", nil)
		return
	}

	if !h.authenticator.VerifyCredentials(req.Email, req.Password) {
		h.logger.WithFields(logrus.Fields{
			"email": req.Email,
			"ip":    clientIP,
		}).Warn("Invalid login attempt")
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, sessionID, err := h.authenticator.CreateSession(req.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create session")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Login failed", nil)
		return
	}

	http.SetCookie(c.Writer, h.authenticator.NewSessionCookie(token))

	h.logger.WithFields(logrus.Fields{
		"email": req.Email,
		"ip":    clientIP,
	}).Info("Admin login successful")

	utils.SuccessResponse(c, http.StatusOK, "Login successful", models.LoginResponse{
		User: models.AdminUserInfo{Email: req.Email, Role: "admin"},
		SessionInfo: models.SessionInfo{
			SessionID:      auth.ShortSessionID(sessionID),
			ActiveSessions: h.authenticator.ActiveSessionCount(),
		},
	})
}

// HandleLogout serves DELETE /api/admin/login. The cookie is cleared even
// when no valid session is attached.
func (h *LoginHandler) HandleLogout(c *gin.Context) {
	if user := h.authenticator.VerifyRequest(c.Request); user != nil {
		h.authenticator.DestroySession(user.SessionID)
		h.logger.WithField("email", user.Email).Info("Admin logout")
	}

	http.SetCookie(c.Writer, h.authenticator.ClearedSessionCookie())
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

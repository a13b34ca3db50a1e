package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deechee777/lawlens/backend/internal/auth"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

const AdminUserKey = "admin_user"

// SecurityHeaders applies the fixed header set to every response.
func SecurityHeaders() gin.HandlerFunc {
	headers := auth.SecurityHeaders()
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Next()
	}
}

// AdminAuth rejects requests without a valid admin session. The verified
// user is stored on the context under AdminUserKey.
func AdminAuth(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := authenticator.VerifyRequest(c.Request)
		if user == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized", nil)
			c.Abort()
			return
		}

		c.Set(AdminUserKey, user)
		c.Next()
	}
}

// AdminUserFrom retrieves the verified admin user set by AdminAuth.
func AdminUserFrom(c *gin.Context) *auth.AdminUser {
	if v, ok := c.Get(AdminUserKey); ok {
		if user, ok := v.(*auth.AdminUser); ok {
			return user
		}
	}
	return nil
}

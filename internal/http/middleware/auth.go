package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shortsview-backend/internal/platform/ctxutil"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
	"github.com/yungbote/shortsview-backend/internal/services"
)

// SessionCookie names the cookie carrying the signed session token.
const SessionCookie = "session"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// resolve attaches the signed-in account to the request context. It reports
// false when there is no valid session.
func (am *AuthMiddleware) resolve(c *gin.Context) bool {
	tokenString := extractToken(c)
	if tokenString == "" {
		return false
	}
	rd, err := am.authService.ResolveSession(c.Request.Context(), tokenString)
	if err != nil || rd == nil || rd.AccountID == 0 {
		am.log.Debug("Session rejected", "error", err)
		return false
	}
	c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
	return true
}

// Optional resolves the session when one is present and never blocks.
func (am *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		am.resolve(c)
		c.Next()
	}
}

// RequirePage sends visitors without a session to the login page.
func (am *AuthMiddleware) RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !am.resolve(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPI answers 401 JSON to callers without a session.
func (am *AuthMiddleware) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !am.resolve(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid session", "code": "unauthorized"},
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after RequirePage. Non-admins are sent home.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || !rd.IsAdmin {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && strings.TrimSpace(cookie) != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

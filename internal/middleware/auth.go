package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/buildtrack/construct-api/internal/auth"
	"github.com/buildtrack/construct-api/internal/constants"
	apierrors "github.com/buildtrack/construct-api/internal/errors"
	"github.com/buildtrack/construct-api/internal/models"
)

// RequireAuth verifies the bearer token and stores the caller's
// identity in the request context.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			apierrors.Unauthorized(c, "Authorization header must use the Bearer scheme")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString, constants.TokenTypeAccess)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole admits only callers carrying the given role. Composes
// after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole, exists := GetUserRole(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if callerRole != role {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.Role, bool) {
	role, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}

	r, ok := role.(models.Role)
	return r, ok
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/auth"
)

const (
	ContextUserID   = "auth.userID"
	ContextUsername = "auth.username"
	ContextRole     = "auth.role"
)

// RequireAuth verifies the Bearer token and stores the authenticated
// identity on the request context for handlers downstream.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates a route on the administrator role. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role := Identity(c)
		if !role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  http.StatusForbidden,
				"error":   "FORBIDDEN",
				"message": "administrator role required",
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated user id and role set by RequireAuth.
func Identity(c *gin.Context) (string, user.Role) {
	id, _ := c.Get(ContextUserID)
	role, _ := c.Get(ContextRole)

	userID, _ := id.(string)
	userRole, _ := role.(user.Role)
	return userID, userRole
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  http.StatusUnauthorized,
		"error":   "UNAUTHORIZED",
		"message": "missing or invalid token",
		"path":    c.Request.URL.Path,
	})
}

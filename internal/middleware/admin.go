package middleware

import (
	"context"  // Request context
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Caller identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// PrincipalLoader resolves the current identity of a user from storage
type PrincipalLoader interface {
	Principal(ctx context.Context, userID uint) (domain.Principal, error)
}

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(UserIDKey) // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, _ := userID.(uint)
		p, err := users.Principal(c.Request.Context(), id) // Fetch current role from database
		if err != nil {
			// If user not found or any error, abort with forbidden status
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Warn("Admin check failed")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check if user role is admin
		if !p.IsAdmin() {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set(PrincipalKey, p) // Refreshed identity for the handler
		// If admin, proceed to the next handler
		c.Next()
	}
}

package auth

import (
	"net/http"

	"icebreaker/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireRole creates a gin middleware that checks the token's roles.
// It must be used AFTER AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := UserID(c); !exists {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if !models.HasRole(Roles(c), role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": role + " required"})
			return
		}

		c.Next()
	}
}

package middlewares

import (
	"context"
	"net/http"

	"codama/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserFinder loads the current state of a user.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RequireAdmin checks if the authenticated user is an admin
// This middleware should be used after Authenticate middleware
func RequireAdmin(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}
		userID, ok := value.(uuid.UUID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid user ID format"})
			return
		}

		// The role in the token may be stale, so it is checked against the
		// database.
		user, err := users.FindUserByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not found"})
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "Access denied. Admin privileges required."})
			return
		}

		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/chatwii/backend/internal/database"
	"github.com/chatwii/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireAdmin ensures the request is authenticated and the user has
// the admin role. Must run after RequireAuth, which sets user_id.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDInterface, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		userID, ok := userIDInterface.(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_context"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin_access_required"})
			c.Abort()
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequirePro gates pro-only routes. A running trial counts as pro.
func RequirePro(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		var profile profiles.Profile
		if err := db.Where("id = ?", userID).First(&profile).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Profile not found"})
			return
		}

		if !profile.HasPro(time.Now()) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "Pro subscription required"})
			return
		}

		c.Next()
	}
}

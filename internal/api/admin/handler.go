package admin

import (
	"net/http"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/calendar"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GET /admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	var totalProfiles, proProfiles, totalEvents, totalEntries int64

	h.db.Model(&profiles.Profile{}).Count(&totalProfiles)
	h.db.Model(&profiles.Profile{}).Where("subscription_tier = ?", profiles.TierPro).Count(&proProfiles)
	h.db.Model(&events.Event{}).Count(&totalEvents)
	h.db.Model(&calendar.UserCalendarEvent{}).Count(&totalEntries)

	c.JSON(http.StatusOK, gin.H{
		"profiles":         totalProfiles,
		"pro_profiles":     proProfiles,
		"events":           totalEvents,
		"calendar_entries": totalEntries,
	})
}

// GET /admin/profiles
func (h *Handler) ListProfiles(c *gin.Context) {
	var list []profiles.Profile
	if err := h.db.Order("created_at DESC").Limit(200).Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, gin.H{
			"id":                  p.ID,
			"email":               p.Email,
			"subscription_tier":   p.SubscriptionTier,
			"subscription_status": p.SubscriptionStatus,
			"created_at":          p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"profiles": out})
}

// GET /admin/profiles/:id
func (h *Handler) GetProfile(c *gin.Context) {
	var profile profiles.Profile
	if err := h.db.Where("id = ?", c.Param("id")).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var subs []subscriptions.Subscription
	h.db.Where("user_id = ?", profile.ID).Order("updated_at DESC").Find(&subs)

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":                  profile.ID,
			"email":               profile.Email,
			"username":            profile.Username,
			"subscription_tier":   profile.SubscriptionTier,
			"subscription_status": profile.SubscriptionStatus,
			"stripe_customer_id":  profile.StripeCustomerID,
			"trial_end":           profile.TrialEnd,
			"created_at":          profile.CreatedAt,
		},
		"subscriptions": subs,
	})
}

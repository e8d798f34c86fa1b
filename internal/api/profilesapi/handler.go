package profilesapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/plans"
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

// isUniqueViolation matches the unique-constraint error text of postgres and
// of the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type meResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Timezone  string  `json:"timezone"`
	Role      string  `json:"role"`

	SubscriptionTier   string       `json:"subscription_tier"`
	SubscriptionStatus string       `json:"subscription_status"`
	TrialEnd           *time.Time   `json:"trial_end"`
	HasPro             bool         `json:"has_pro"`
	Limits             plans.Limits `json:"limits"`

	Subscription *subscriptionDTO `json:"subscription"`
}

type subscriptionDTO struct {
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
}

// GET /me
func (h *Handler) GetCurrentProfile(c *gin.Context) {
	var profile profiles.Profile
	if err := h.db.Where("id = ?", c.GetString("user_id")).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	now := time.Now()
	effectiveTier := profile.SubscriptionTier
	if profile.HasPro(now) {
		effectiveTier = profiles.TierPro
	}

	resp := meResponse{
		ID:                 profile.ID.String(),
		Email:              profile.Email,
		Username:           profile.Username,
		FullName:           profile.FullName,
		AvatarURL:          profile.AvatarURL,
		Timezone:           profile.Timezone,
		Role:               profile.Role,
		SubscriptionTier:   profile.SubscriptionTier,
		SubscriptionStatus: profile.SubscriptionStatus,
		TrialEnd:           profile.TrialEnd,
		HasPro:             profile.HasPro(now),
		Limits:             plans.ForTier(effectiveTier),
	}

	var sub subscriptions.Subscription
	if err := h.db.Where("user_id = ?", profile.ID).
		Order("updated_at DESC").
		First(&sub).Error; err == nil {
		resp.Subscription = &subscriptionDTO{
			Status:             sub.Status,
			CurrentPeriodStart: sub.CurrentPeriodStart,
			CurrentPeriodEnd:   sub.CurrentPeriodEnd,
			CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// PUT /me
func (h *Handler) UpdateCurrentProfile(c *gin.Context) {
	var input struct {
		Username  *string `json:"username"`
		FullName  *string `json:"full_name"`
		AvatarURL *string `json:"avatar_url"`
		Timezone  *string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Username != nil {
		updates["username"] = *input.Username
	}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown timezone"})
			return
		}
		updates["timezone"] = *input.Timezone
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	res := h.db.Model(&profiles.Profile{}).
		Where("id = ?", c.GetString("user_id")).
		Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	h.GetCurrentProfile(c)
}

package calendarapi

import (
	"net/http"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/calendar"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/plans"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GET /calendar
func (h *Handler) ListEntries(c *gin.Context) {
	var entries []calendar.UserCalendarEvent
	if err := h.db.Preload("Event").Preload("Event.Category").
		Where("user_id = ?", c.GetString("user_id")).
		Joins("JOIN events ON events.id = user_calendar_events.event_id").
		Order("events.start_datetime ASC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// POST /calendar
func (h *Handler) AddEntry(c *gin.Context) {
	var input struct {
		EventID     string  `json:"event_id" binding:"required"`
		CustomTitle *string `json:"custom_title"`
		CustomNotes *string `json:"custom_notes"`
		WatchStatus string  `json:"watch_status"`
		IsFavorite  bool    `json:"is_favorite"`
		IsPrivate   bool    `json:"is_private"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID, err := uuid.Parse(input.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_id"})
		return
	}
	if input.WatchStatus != "" && !calendar.ValidWatchStatus(input.WatchStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown watch status"})
		return
	}

	userID := c.GetString("user_id")

	var profile profiles.Profile
	if err := h.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
		return
	}

	var event events.Event
	if err := h.db.Where("id = ?", eventID).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	// free tier caps the calendar size; a running trial counts as pro
	tier := profiles.TierFree
	if profile.HasPro(time.Now()) {
		tier = profiles.TierPro
	}
	var count int64
	if err := h.db.Model(&calendar.UserCalendarEvent{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count calendar entries"})
		return
	}
	if !plans.ForTier(tier).AllowsEvent(count) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Free calendar is full, upgrade to pro for unlimited events"})
		return
	}

	entry := calendar.UserCalendarEvent{
		UserID:      profile.ID,
		EventID:     eventID,
		CustomTitle: input.CustomTitle,
		CustomNotes: input.CustomNotes,
		IsFavorite:  input.IsFavorite,
		IsPrivate:   input.IsPrivate,
	}
	if input.WatchStatus != "" {
		entry.WatchStatus = input.WatchStatus
	}

	if err := h.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Event already on your calendar"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// PUT /calendar/:id
func (h *Handler) UpdateEntry(c *gin.Context) {
	var entry calendar.UserCalendarEvent
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), c.GetString("user_id")).
		First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Calendar entry not found"})
		return
	}

	var input struct {
		CustomTitle          *string      `json:"custom_title"`
		CustomNotes          *string      `json:"custom_notes"`
		WatchStatus          *string      `json:"watch_status"`
		UserRating           *int         `json:"user_rating"`
		IsFavorite           *bool        `json:"is_favorite"`
		IsPrivate            *bool        `json:"is_private"`
		NotifyBeforeMinutes  *events.JSON `json:"notify_before_minutes"`
		NotificationsEnabled *bool        `json:"notifications_enabled"`
		WatchProgress        *int         `json:"watch_progress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.CustomTitle != nil {
		updates["custom_title"] = *input.CustomTitle
	}
	if input.CustomNotes != nil {
		updates["custom_notes"] = *input.CustomNotes
	}
	if input.WatchStatus != nil {
		if !calendar.ValidWatchStatus(*input.WatchStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown watch status"})
			return
		}
		updates["watch_status"] = *input.WatchStatus
		if *input.WatchStatus == calendar.WatchCompleted {
			updates["last_watched_at"] = time.Now()
		}
	}
	if input.UserRating != nil {
		if *input.UserRating < 1 || *input.UserRating > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 10"})
			return
		}
		updates["user_rating"] = *input.UserRating
	}
	if input.IsFavorite != nil {
		updates["is_favorite"] = *input.IsFavorite
	}
	if input.IsPrivate != nil {
		updates["is_private"] = *input.IsPrivate
	}
	if input.NotifyBeforeMinutes != nil {
		updates["notify_before_minutes"] = *input.NotifyBeforeMinutes
	}
	if input.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *input.NotificationsEnabled
	}
	if input.WatchProgress != nil {
		if *input.WatchProgress < 0 || *input.WatchProgress > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Progress must be between 0 and 100"})
			return
		}
		updates["watch_progress"] = *input.WatchProgress
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := h.db.Model(&entry).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update calendar entry"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GET /calendar/stats (pro only)
func (h *Handler) Stats(c *gin.Context) {
	userID := c.GetString("user_id")

	type statusCount struct {
		WatchStatus string `json:"watch_status"`
		Count       int64  `json:"count"`
	}
	var byStatus []statusCount
	if err := h.db.Model(&calendar.UserCalendarEvent{}).
		Select("watch_status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("watch_status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendar stats"})
		return
	}

	var total, favorites int64
	for _, s := range byStatus {
		total += s.Count
	}
	if err := h.db.Model(&calendar.UserCalendarEvent{}).
		Where("user_id = ? AND is_favorite", userID).
		Count(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendar stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"favorites": favorites,
		"by_status": byStatus,
	})
}

// DELETE /calendar/:id
func (h *Handler) RemoveEntry(c *gin.Context) {
	res := h.db.Where("id = ? AND user_id = ?", c.Param("id"), c.GetString("user_id")).
		Delete(&calendar.UserCalendarEvent{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove calendar entry"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Calendar entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

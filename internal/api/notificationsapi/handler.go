package notificationsapi

import (
	"net/http"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/notifications"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Notifications are read-only records here: nothing in this service sends
// them, the API only lists what has been stored.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GET /notifications
func (h *Handler) ListNotifications(c *gin.Context) {
	var list []notifications.Notification
	q := h.db.Where("user_id = ?", c.GetString("user_id"))
	if c.Query("unread") == "true" {
		q = q.Where("read_at IS NULL")
	}
	if err := q.Order("sent_at DESC").Limit(50).Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// POST /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	res := h.db.Model(&notifications.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", c.Param("id"), c.GetString("user_id")).
		Update("read_at", time.Now())
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found or already read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

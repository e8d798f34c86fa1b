package eventsapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultWindowDays = 30
	maxPageSize       = 100
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GET /events
//
// Filters: from/to (RFC 3339), type, category (slug), q (title substring),
// limit/offset. Defaults to the next 30 days.
func (h *Handler) ListEvents(c *gin.Context) {
	now := time.Now()
	from := now
	to := now.AddDate(0, 0, defaultWindowDays)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp"})
			return
		}
		to = t
	}

	q := h.db.Model(&events.Event{}).
		Preload("Category").
		Where("start_datetime >= ? AND start_datetime < ?", from, to)

	if v := c.Query("type"); v != "" {
		if !events.ValidType(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type"})
			return
		}
		q = q.Where("event_type = ?", v)
	}
	if v := c.Query("category"); v != "" {
		q = q.Joins("JOIN event_categories ON event_categories.id = events.category_id").
			Where("event_categories.slug = ?", v)
	}
	if v := c.Query("q"); v != "" {
		q = q.Where("events.title ILIKE ?", "%"+v+"%")
	}

	limit := maxPageSize
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if n < limit {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
			return
		}
		offset = n
	}

	var list []events.Event
	if err := q.Order("start_datetime ASC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": list})
}

// GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	var event events.Event
	if err := h.db.Preload("Category").Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	var list []events.EventCategory
	if err := h.db.Order("name ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": list})
}

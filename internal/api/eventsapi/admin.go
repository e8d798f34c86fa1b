package eventsapi

import (
	"net/http"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type eventInput struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	EventType   string  `json:"event_type" binding:"required"`

	SeasonNumber  *int    `json:"season_number"`
	EpisodeNumber *int    `json:"episode_number"`
	SeriesName    *string `json:"series_name"`
	EpisodeTitle  *string `json:"episode_title"`

	ReleaseType    *string `json:"release_type"`
	Director       *string `json:"director"`
	RuntimeMinutes *int    `json:"runtime_minutes"`

	SportType *string     `json:"sport_type"`
	Teams     events.JSON `json:"teams"`
	League    *string     `json:"league"`
	Venue     *string     `json:"venue"`

	StartDatetime time.Time  `json:"start_datetime" binding:"required"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Timezone      string     `json:"timezone"`

	Platforms   events.JSON `json:"platforms"`
	ExternalIDs events.JSON `json:"external_ids"`

	PosterURL   *string  `json:"poster_url"`
	BackdropURL *string  `json:"backdrop_url"`
	TrailerURL  *string  `json:"trailer_url"`
	Rating      *string  `json:"rating"`
	IMDBRating  *float64 `json:"imdb_rating"`

	Status string `json:"status"`
}

func (in *eventInput) apply(event *events.Event) error {
	if !events.ValidType(in.EventType) {
		return errInvalidType
	}
	if in.Status != "" && !events.ValidStatus(in.Status) {
		return errInvalidStatus
	}
	if in.CategoryID != nil {
		id, err := uuid.Parse(*in.CategoryID)
		if err != nil {
			return errInvalidCategory
		}
		event.CategoryID = &id
	} else {
		event.CategoryID = nil
	}

	event.Title = in.Title
	event.Description = in.Description
	event.EventType = in.EventType
	event.SeasonNumber = in.SeasonNumber
	event.EpisodeNumber = in.EpisodeNumber
	event.SeriesName = in.SeriesName
	event.EpisodeTitle = in.EpisodeTitle
	event.ReleaseType = in.ReleaseType
	event.Director = in.Director
	event.RuntimeMinutes = in.RuntimeMinutes
	event.SportType = in.SportType
	event.Teams = in.Teams
	event.League = in.League
	event.Venue = in.Venue
	event.StartDatetime = in.StartDatetime
	event.EndDatetime = in.EndDatetime
	event.PosterURL = in.PosterURL
	event.BackdropURL = in.BackdropURL
	event.TrailerURL = in.TrailerURL
	event.Rating = in.Rating
	event.IMDBRating = in.IMDBRating

	if in.Timezone != "" {
		event.Timezone = in.Timezone
	}
	if in.Status != "" {
		event.Status = in.Status
	}
	if len(in.Platforms) > 0 {
		event.Platforms = in.Platforms
	}
	if len(in.ExternalIDs) > 0 {
		event.ExternalIDs = in.ExternalIDs
	}
	return nil
}

var (
	errInvalidType     = &inputError{"Unknown event type"}
	errInvalidStatus   = &inputError{"Unknown event status"}
	errInvalidCategory = &inputError{"Invalid category_id"}
)

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }

// POST /admin/events
func (h *Handler) CreateEvent(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event events.Event
	if err := input.apply(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

// PUT /admin/events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	var event events.Event
	if err := h.db.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.apply(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /admin/events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	res := h.db.Where("id = ?", c.Param("id")).Delete(&events.Event{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// POST /admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var input struct {
		Name        string  `json:"name" binding:"required"`
		Slug        string  `json:"slug" binding:"required"`
		Color       string  `json:"color"`
		Icon        *string `json:"icon"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := events.EventCategory{
		Name:        input.Name,
		Slug:        input.Slug,
		Icon:        input.Icon,
		Description: input.Description,
	}
	if input.Color != "" {
		category.Color = input.Color
	}

	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category slug already exists"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

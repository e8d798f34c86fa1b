package calendar

import (
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"

	"github.com/google/uuid"
)

const (
	WatchPlanning  = "planning"
	WatchWatching  = "watching"
	WatchCompleted = "completed"
	WatchDropped   = "dropped"
	WatchOnHold    = "on_hold"
)

func ValidWatchStatus(s string) bool {
	switch s {
	case WatchPlanning, WatchWatching, WatchCompleted, WatchDropped, WatchOnHold:
		return true
	}
	return false
}

// UserCalendarEvent links one profile to one catalog event, with the user's
// own tracking state layered on top.
type UserCalendarEvent struct {
	ID      uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_calendar_events_user_event" json:"user_id"`
	EventID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_calendar_events_user_event" json:"event_id"`
	Event   *events.Event `gorm:"foreignKey:EventID" json:"event,omitempty"`

	CustomTitle *string `json:"custom_title"`
	CustomNotes *string `json:"custom_notes"`

	WatchStatus string `gorm:"type:varchar(20);not null;default:'planning'" json:"watch_status"`
	UserRating  *int   `json:"user_rating"`
	IsFavorite  bool   `gorm:"not null;default:false" json:"is_favorite"`
	IsPrivate   bool   `gorm:"not null;default:false" json:"is_private"`

	NotifyBeforeMinutes  events.JSON `gorm:"type:jsonb;not null;default:'[30]'" json:"notify_before_minutes"`
	NotificationsEnabled bool        `gorm:"not null;default:true" json:"notifications_enabled"`

	WatchProgress int        `gorm:"not null;default:0" json:"watch_progress"`
	LastWatchedAt *time.Time `json:"last_watched_at"`

	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserCalendarEvent) TableName() string { return "user_calendar_events" }

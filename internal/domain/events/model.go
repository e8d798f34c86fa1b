package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeTVShow  = "tv_show"
	TypeMovie   = "movie"
	TypeSports  = "sports"
	TypeSpecial = "special"
)

const (
	StatusConfirmed = "confirmed"
	StatusTentative = "tentative"
	StatusCancelled = "cancelled"
	StatusPostponed = "postponed"
)

func ValidType(t string) bool {
	switch t {
	case TypeTVShow, TypeMovie, TypeSports, TypeSpecial:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusConfirmed, StatusTentative, StatusCancelled, StatusPostponed:
		return true
	}
	return false
}

type EventCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"not null;uniqueIndex:idx_event_categories_slug" json:"slug"`
	Color       string    `gorm:"not null;default:'#6366f1'" json:"color"`
	Icon        *string   `json:"icon"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (EventCategory) TableName() string { return "event_categories" }

// Event is one entry in the shared release catalog: a TV episode, a movie
// premiere, a sports fixture or a one-off special.
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`

	CategoryID *uuid.UUID     `gorm:"type:uuid;index:idx_events_category_id" json:"category_id"`
	Category   *EventCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	EventType string `gorm:"type:varchar(20);not null;index:idx_events_event_type" json:"event_type"`

	// TV fields
	SeasonNumber  *int    `json:"season_number"`
	EpisodeNumber *int    `json:"episode_number"`
	SeriesName    *string `json:"series_name"`
	EpisodeTitle  *string `json:"episode_title"`

	// Movie fields
	ReleaseType    *string `json:"release_type"`
	Director       *string `json:"director"`
	RuntimeMinutes *int    `json:"runtime_minutes"`

	// Sports fields
	SportType *string `json:"sport_type"`
	Teams     JSON    `gorm:"type:jsonb" json:"teams"`
	League    *string `json:"league"`
	Venue     *string `json:"venue"`

	StartDatetime time.Time  `gorm:"not null;index:idx_events_start_datetime" json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Timezone      string     `gorm:"not null;default:'UTC'" json:"timezone"`

	Platforms   JSON `gorm:"type:jsonb;not null;default:'[]'" json:"platforms"`
	ExternalIDs JSON `gorm:"column:external_ids;type:jsonb;not null;default:'{}'" json:"external_ids"`

	PosterURL   *string  `gorm:"column:poster_url" json:"poster_url"`
	BackdropURL *string  `gorm:"column:backdrop_url" json:"backdrop_url"`
	TrailerURL  *string  `gorm:"column:trailer_url" json:"trailer_url"`
	Rating      *string  `json:"rating"`
	IMDBRating  *float64 `gorm:"column:imdb_rating" json:"imdb_rating"`

	Status string `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

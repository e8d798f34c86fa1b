package notifications

import (
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"

	"github.com/google/uuid"
)

const (
	TypeReminder       = "reminder"
	TypeNewEpisode     = "new_episode"
	TypeScheduleChange = "schedule_change"
	TypeRecommendation = "recommendation"
)

// Notification is a stored record only. Nothing in this service delivers
// notifications; rows are written by whatever produces them and read back
// through the API.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_id" json:"user_id"`
	EventID uuid.UUID `gorm:"type:uuid;not null" json:"event_id"`

	Type    string      `gorm:"type:varchar(30);not null" json:"type"`
	Title   string      `gorm:"not null" json:"title"`
	Message *string     `json:"message"`
	Data    events.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"data"`

	SentAt         time.Time  `gorm:"autoCreateTime" json:"sent_at"`
	ReadAt         *time.Time `json:"read_at"`
	ClickedAt      *time.Time `json:"clicked_at"`
	DeliveryMethod string     `gorm:"type:varchar(20);not null;default:'in_app'" json:"delivery_method"`
}

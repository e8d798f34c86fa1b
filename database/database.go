package database

import (
	"fmt"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/calendar"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/notifications"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/subscriptions"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// gen_random_uuid() needs pgcrypto
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return nil, fmt.Errorf("enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&profiles.Profile{},
		&subscriptions.Subscription{},

		&events.EventCategory{},
		&events.Event{},
		&calendar.UserCalendarEvent{},
		&notifications.Notification{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return db, nil
}

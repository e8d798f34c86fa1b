package calendarapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/calendar"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/events"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupCalendarTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id text PRIMARY KEY,
			email text NOT NULL,
			password text,
			auth_provider text NOT NULL DEFAULT 'local',
			google_sub text,
			role text NOT NULL DEFAULT 'user',
			username text,
			full_name text,
			avatar_url text,
			timezone text NOT NULL DEFAULT 'UTC',
			subscription_tier text NOT NULL DEFAULT 'free',
			subscription_status text NOT NULL DEFAULT 'inactive',
			stripe_customer_id text,
			trial_end datetime,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id text PRIMARY KEY,
			title text NOT NULL,
			description text,
			category_id text,
			event_type text NOT NULL,
			season_number integer,
			episode_number integer,
			series_name text,
			episode_title text,
			release_type text,
			director text,
			runtime_minutes integer,
			sport_type text,
			teams text,
			league text,
			venue text,
			start_datetime datetime NOT NULL,
			end_datetime datetime,
			timezone text NOT NULL DEFAULT 'UTC',
			platforms text NOT NULL DEFAULT '[]',
			external_ids text NOT NULL DEFAULT '{}',
			poster_url text,
			backdrop_url text,
			trailer_url text,
			rating text,
			imdb_rating real,
			status text NOT NULL DEFAULT 'confirmed',
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE IF NOT EXISTS user_calendar_events (
			id text PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			user_id text NOT NULL,
			event_id text NOT NULL,
			custom_title text,
			custom_notes text,
			watch_status text NOT NULL DEFAULT 'planning',
			user_rating integer,
			is_favorite numeric NOT NULL DEFAULT 0,
			is_private numeric NOT NULL DEFAULT 0,
			notify_before_minutes text NOT NULL DEFAULT '[30]',
			notifications_enabled numeric NOT NULL DEFAULT 1,
			watch_progress integer NOT NULL DEFAULT 0,
			last_watched_at datetime,
			added_at datetime,
			updated_at datetime
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_calendar_events_user_event
			ON user_calendar_events(user_id, event_id)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedCalendarProfile(t *testing.T, db *gorm.DB, tier string, trialEnd *time.Time) profiles.Profile {
	t.Helper()
	p := profiles.Profile{
		ID:               uuid.New(),
		Email:            fmt.Sprintf("%s@example.com", uuid.NewString()),
		SubscriptionTier: tier,
		TrialEnd:         trialEnd,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedCatalogEvent(t *testing.T, db *gorm.DB) events.Event {
	t.Helper()
	ev := events.Event{
		ID:            uuid.New(),
		Title:         "Premiere " + uuid.NewString()[:8],
		EventType:     events.TypeMovie,
		StartDatetime: time.Now().Add(48 * time.Hour),
	}
	require.NoError(t, db.Create(&ev).Error)
	return ev
}

func fillCalendar(t *testing.T, db *gorm.DB, userID uuid.UUID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&calendar.UserCalendarEvent{
			ID:      uuid.New(),
			UserID:  userID,
			EventID: uuid.New(),
		}).Error)
	}
}

func newCalendarRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	h := NewHandler(db)
	identify := func(c *gin.Context) { c.Set("user_id", userID.String()) }
	r.POST("/calendar", identify, h.AddEntry)
	return r
}

func postEntry(r *gin.Engine, eventID uuid.UUID) *httptest.ResponseRecorder {
	body := fmt.Sprintf(`{"event_id":%q}`, eventID)
	req := httptest.NewRequest(http.MethodPost, "/calendar", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func calendarCount(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&calendar.UserCalendarEvent{}).
		Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestAddEntryFreeTierBelowCap(t *testing.T) {
	db := setupCalendarTestDB(t)
	p := seedCalendarProfile(t, db, profiles.TierFree, nil)
	ev := seedCatalogEvent(t, db)

	w := postEntry(newCalendarRouter(db, p.ID), ev.ID)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, calendarCount(t, db, p.ID))
}

func TestAddEntryFreeTierCapIsEnforced(t *testing.T) {
	db := setupCalendarTestDB(t)
	p := seedCalendarProfile(t, db, profiles.TierFree, nil)
	fillCalendar(t, db, p.ID, 25)
	ev := seedCatalogEvent(t, db)

	w := postEntry(newCalendarRouter(db, p.ID), ev.ID)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "upgrade to pro")
	assert.EqualValues(t, 25, calendarCount(t, db, p.ID))
}

func TestAddEntryProAndTrialBypassCap(t *testing.T) {
	db := setupCalendarTestDB(t)

	pro := seedCalendarProfile(t, db, profiles.TierPro, nil)
	fillCalendar(t, db, pro.ID, 25)
	w := postEntry(newCalendarRouter(db, pro.ID), seedCatalogEvent(t, db).ID)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 26, calendarCount(t, db, pro.ID))

	trialEnd := time.Now().Add(72 * time.Hour)
	trialer := seedCalendarProfile(t, db, profiles.TierFree, &trialEnd)
	fillCalendar(t, db, trialer.ID, 25)
	w = postEntry(newCalendarRouter(db, trialer.ID), seedCatalogEvent(t, db).ID)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 26, calendarCount(t, db, trialer.ID))
}

func TestAddEntryDuplicateConflicts(t *testing.T) {
	db := setupCalendarTestDB(t)
	p := seedCalendarProfile(t, db, profiles.TierPro, nil)
	ev := seedCatalogEvent(t, db)
	r := newCalendarRouter(db, p.ID)

	assert.Equal(t, http.StatusCreated, postEntry(r, ev.ID).Code)
	assert.Equal(t, http.StatusConflict, postEntry(r, ev.ID).Code)
}

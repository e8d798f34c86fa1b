package profilesapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/subscriptions"
	"github.com/aaron24estrada/Binge-Calendar/internal/store"

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

func setupProfilesTestDB(t *testing.T) *gorm.DB {
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
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			stripe_customer_id text NOT NULL,
			stripe_subscription_id text NOT NULL,
			status text NOT NULL,
			current_period_start datetime,
			current_period_end datetime,
			cancel_at_period_end numeric NOT NULL DEFAULT 0,
			canceled_at datetime,
			trial_start datetime,
			trial_end datetime,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_stripe_subscription_id
			ON subscriptions(stripe_subscription_id)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedMeProfile(t *testing.T, db *gorm.DB, username *string) profiles.Profile {
	t.Helper()
	p := profiles.Profile{
		ID:                 uuid.New(),
		Email:              fmt.Sprintf("%s@example.com", uuid.NewString()),
		Username:           username,
		SubscriptionTier:   profiles.TierFree,
		SubscriptionStatus: profiles.StatusInactive,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func newMeRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	h := NewHandler(db)
	identify := func(c *gin.Context) { c.Set("user_id", userID.String()) }
	r.GET("/me", identify, h.GetCurrentProfile)
	r.PUT("/me", identify, h.UpdateCurrentProfile)
	return r
}

func getMe(t *testing.T, r *gin.Engine) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func putMe(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/me", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Walks a profile through the state changes the webhook reconciler applies
// and checks /me reports each of them.
func TestGetCurrentProfileReflectsBillingState(t *testing.T) {
	db := setupProfilesTestDB(t)
	p := seedMeProfile(t, db, nil)
	r := newMeRouter(db, p.ID)
	st := store.NewGorm(db)

	body := getMe(t, r)
	assert.Equal(t, "free", body["subscription_tier"])
	assert.Equal(t, false, body["has_pro"])
	assert.Nil(t, body["subscription"])

	customerID := "cus_" + uuid.NewString()[:8]
	periodEnd := time.Now().Add(30 * 24 * time.Hour).UTC()
	require.NoError(t, st.ActivateProfile(p.ID, customerID))
	require.NoError(t, st.UpsertSubscription(&subscriptions.Subscription{
		ID:                   uuid.New(),
		UserID:               p.ID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: "sub_" + uuid.NewString()[:8],
		Status:               "active",
		CurrentPeriodEnd:     &periodEnd,
	}))

	body = getMe(t, r)
	assert.Equal(t, "pro", body["subscription_tier"])
	assert.Equal(t, "active", body["subscription_status"])
	assert.Equal(t, true, body["has_pro"])
	limits := body["limits"].(map[string]any)
	assert.EqualValues(t, -1, limits["max_events"])
	sub := body["subscription"].(map[string]any)
	assert.Equal(t, "active", sub["status"])

	require.NoError(t, st.SetProfileBilling(p.ID, profiles.TierFree, "past_due"))

	body = getMe(t, r)
	assert.Equal(t, "free", body["subscription_tier"])
	assert.Equal(t, "past_due", body["subscription_status"])
	assert.Equal(t, false, body["has_pro"])
	limits = body["limits"].(map[string]any)
	assert.EqualValues(t, 25, limits["max_events"])
}

func TestUpdateCurrentProfileUsernameConflict(t *testing.T) {
	db := setupProfilesTestDB(t)
	taken := "taken_" + uuid.NewString()[:8]
	seedMeProfile(t, db, &taken)
	p := seedMeProfile(t, db, nil)

	w := putMe(newMeRouter(db, p.ID), fmt.Sprintf(`{"username":%q}`, taken))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestUpdateCurrentProfileStoreFailureIsServerError(t *testing.T) {
	db := setupProfilesTestDB(t)
	p := seedMeProfile(t, db, nil)
	r := newMeRouter(db, p.ID)

	require.NoError(t, db.Exec(`ALTER TABLE profiles RENAME TO profiles_gone`).Error)
	defer db.Exec(`ALTER TABLE profiles_gone RENAME TO profiles`)

	w := putMe(r, `{"full_name":"Someone Else"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

package store

import (
	"errors"
	"testing"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/subscriptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
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
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email)`,
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
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_stripe_subscription_id ON subscriptions(stripe_subscription_id)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestUpsertSubscriptionRefreshesExistingRow(t *testing.T) {
	db := setupStoreTestDB(t)
	st := NewGorm(db)

	userID := uuid.New()
	require.NoError(t, st.UpsertSubscription(&subscriptions.Subscription{
		ID:                   uuid.New(),
		UserID:               userID,
		StripeCustomerID:     "cus_refresh",
		StripeSubscriptionID: "sub_refresh",
		Status:               "active",
	}))

	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	canceledAt := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.UpsertSubscription(&subscriptions.Subscription{
		ID:                   uuid.New(),
		UserID:               userID,
		StripeCustomerID:     "cus_refresh",
		StripeSubscriptionID: "sub_refresh",
		Status:               "active",
		CurrentPeriodEnd:     &periodEnd,
		CancelAtPeriodEnd:    true,
		CanceledAt:           &canceledAt,
	}))

	var count int64
	require.NoError(t, db.Model(&subscriptions.Subscription{}).
		Where("stripe_subscription_id = ?", "sub_refresh").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var got subscriptions.Subscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_refresh").First(&got).Error)
	assert.True(t, got.CancelAtPeriodEnd)
	require.NotNil(t, got.CanceledAt)
	assert.WithinDuration(t, canceledAt, *got.CanceledAt, time.Second)
	require.NotNil(t, got.CurrentPeriodEnd)
	assert.WithinDuration(t, periodEnd, *got.CurrentPeriodEnd, time.Second)
}

func TestProfileByCustomerIDMissingIsNil(t *testing.T) {
	db := setupStoreTestDB(t)
	st := NewGorm(db)

	p, err := st.ProfileByCustomerID("cus_nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMarkSubscriptionsCanceled(t *testing.T) {
	db := setupStoreTestDB(t)
	st := NewGorm(db)

	userID := uuid.New()
	otherID := uuid.New()
	for i, sub := range []string{"sub_mc_1", "sub_mc_2"} {
		owner := userID
		if i == 1 {
			owner = otherID
		}
		require.NoError(t, st.UpsertSubscription(&subscriptions.Subscription{
			ID:                   uuid.New(),
			UserID:               owner,
			StripeCustomerID:     "cus_mc",
			StripeSubscriptionID: sub,
			Status:               "active",
		}))
	}

	require.NoError(t, st.MarkSubscriptionsCanceled(userID))

	var mine, theirs subscriptions.Subscription
	require.NoError(t, db.Where("user_id = ?", userID).First(&mine).Error)
	require.NoError(t, db.Where("user_id = ?", otherID).First(&theirs).Error)
	assert.Equal(t, profiles.StatusCanceled, mine.Status)
	assert.NotNil(t, mine.CanceledAt)
	assert.Equal(t, "active", theirs.Status)
	assert.Nil(t, theirs.CanceledAt)
}

func TestTransactRollsBackOnError(t *testing.T) {
	db := setupStoreTestDB(t)
	st := NewGorm(db)

	err := st.Transact(func(tx ProfileStore) error {
		if err := tx.UpsertSubscription(&subscriptions.Subscription{
			ID:                   uuid.New(),
			UserID:               uuid.New(),
			StripeCustomerID:     "cus_rb",
			StripeSubscriptionID: "sub_rb",
			Status:               "active",
		}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&subscriptions.Subscription{}).
		Where("stripe_subscription_id = ?", "sub_rb").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

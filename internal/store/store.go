// Package store holds the persistence operations the webhook reconciler
// needs, behind an interface so tests can swap in a fake.
package store

import (
	"errors"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/subscriptions"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileStore is the slice of persistence the reconciler uses.
//
// Lookups return (nil, nil) when no row matches; the reconciler treats that
// as an attribution failure, not an error.
type ProfileStore interface {
	ProfileByCustomerID(customerID string) (*profiles.Profile, error)

	// ActivateProfile marks a profile pro/active and records its Stripe
	// customer id. Unconditional overwrite, safe under redelivery.
	ActivateProfile(userID uuid.UUID, customerID string) error

	// SetProfileBilling overwrites the profile's tier and raw billing status.
	SetProfileBilling(userID uuid.UUID, tier, status string) error

	// UpsertSubscription inserts or replaces the mirror row keyed by the
	// Stripe subscription id.
	UpsertSubscription(sub *subscriptions.Subscription) error

	// MarkSubscriptionsCanceled flips every subscription row of the user to
	// canceled. No rows is a no-op.
	MarkSubscriptionsCanceled(userID uuid.UUID) error

	// Transact runs fn against a store bound to one transaction.
	Transact(fn func(ProfileStore) error) error
}

// Gorm implements ProfileStore on a gorm connection (or transaction).
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) ProfileByCustomerID(customerID string) (*profiles.Profile, error) {
	var p profiles.Profile
	err := s.db.Where("stripe_customer_id = ?", customerID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Gorm) ActivateProfile(userID uuid.UUID, customerID string) error {
	return s.db.Model(&profiles.Profile{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_tier":   profiles.TierPro,
			"subscription_status": profiles.StatusActive,
			"stripe_customer_id":  customerID,
		}).Error
}

func (s *Gorm) SetProfileBilling(userID uuid.UUID, tier, status string) error {
	return s.db.Model(&profiles.Profile{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_tier":   tier,
			"subscription_status": status,
		}).Error
}

func (s *Gorm) UpsertSubscription(sub *subscriptions.Subscription) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stripe_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"stripe_customer_id",
			"status",
			"current_period_start",
			"current_period_end",
			"cancel_at_period_end",
			"canceled_at",
			"trial_start",
			"trial_end",
			"updated_at",
		}),
	}).Create(sub).Error
}

func (s *Gorm) MarkSubscriptionsCanceled(userID uuid.UUID) error {
	now := time.Now()
	return s.db.Model(&subscriptions.Subscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":      profiles.StatusCanceled,
			"canceled_at": now,
		}).Error
}

func (s *Gorm) Transact(fn func(ProfileStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

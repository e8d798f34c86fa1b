package subscriptions

import (
	"time"

	"github.com/google/uuid"
)

// Subscription mirrors one Stripe subscription resource. Rows are upserted
// by the webhook reconciler, keyed by the Stripe subscription id, and never
// deleted; cancellation is a status value, not a row removal.
type Subscription struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_subscriptions_user_id"`

	StripeCustomerID     string `gorm:"column:stripe_customer_id;not null"`
	StripeSubscriptionID string `gorm:"column:stripe_subscription_id;not null;uniqueIndex:idx_subscriptions_stripe_subscription_id"`

	// Stripe's status string, stored verbatim.
	Status string `gorm:"type:varchar(30);not null"`

	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  bool `gorm:"not null;default:false"`
	CanceledAt         *time.Time

	TrialStart *time.Time
	TrialEnd   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

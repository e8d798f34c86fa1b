package profiles

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tiers. Free is the default for every new profile.
const (
	TierFree = "free"
	TierPro  = "pro"
)

// Local subscription statuses. Stripe statuses not in this set (e.g.
// "trialing", "incomplete") are still stored verbatim on the profile.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusCanceled = "canceled"
	StatusPastDue  = "past_due"
)

type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Email        string  `gorm:"not null;uniqueIndex:idx_profiles_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_profiles_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'"`

	Username  *string `gorm:"uniqueIndex:idx_profiles_username"`
	FullName  *string
	AvatarURL *string `gorm:"column:avatar_url"`
	Timezone  string  `gorm:"not null;default:'UTC'"`

	SubscriptionTier   string     `gorm:"type:varchar(10);not null;default:'free'"`
	SubscriptionStatus string     `gorm:"type:varchar(30);not null;default:'inactive'"`
	StripeCustomerID   *string    `gorm:"column:stripe_customer_id;uniqueIndex:idx_profiles_stripe_customer_id"`
	TrialEnd           *time.Time `gorm:"column:trial_end"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TierForStatus maps the billing status Stripe reports to the entitlement
// tier. Only an active subscription grants pro; anything else collapses to
// free. The raw status string is stored alongside, never rewritten.
func TierForStatus(status string) string {
	if status == StatusActive {
		return TierPro
	}
	return TierFree
}

// InTrial reports whether the profile's trial window is still open.
func (p *Profile) InTrial(now time.Time) bool {
	return p.TrialEnd != nil && now.Before(*p.TrialEnd)
}

// HasPro reports whether the profile is entitled to pro features, either
// through an active subscription or a running trial.
func (p *Profile) HasPro(now time.Time) bool {
	return p.SubscriptionTier == TierPro || p.InTrial(now)
}

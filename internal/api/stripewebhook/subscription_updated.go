package stripewebhook

import (
	"fmt"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/store"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionUpdated mirrors any lifecycle change Stripe reports.
// Stripe is the sole source of truth: the stored tier is recomputed from the
// event's status alone, last event wins.
func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Customer == nil || sub.Customer.ID == "" {
		h.log.Warn().Str("subscription", sub.ID).Msg("subscription event without customer, dropping")
		return nil
	}

	profile, err := h.store.ProfileByCustomerID(sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("lookup profile for customer %s: %w", sub.Customer.ID, err)
	}
	if profile == nil {
		// No local profile for this customer yet. A later attributable
		// event re-establishes state, so drop rather than force redelivery.
		h.log.Warn().Str("customer", sub.Customer.ID).Msg("no profile for customer, dropping event")
		return nil
	}

	status := string(sub.Status)
	return h.store.Transact(func(tx store.ProfileStore) error {
		if err := tx.UpsertSubscription(subscriptionRow(profile.ID, sub)); err != nil {
			return fmt.Errorf("upsert subscription %s: %w", sub.ID, err)
		}
		if err := tx.SetProfileBilling(profile.ID, profiles.TierForStatus(status), status); err != nil {
			return fmt.Errorf("update profile %s billing: %w", profile.ID, err)
		}
		return nil
	})
}

package stripewebhook

import (
	"fmt"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/store"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionDeleted drops the profile back to free when Stripe ends
// the subscription. The mirror rows are flipped to canceled, never removed;
// no matching row means nothing to cancel.
func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.Customer == nil || sub.Customer.ID == "" {
		h.log.Warn().Str("subscription", sub.ID).Msg("deletion event without customer, dropping")
		return nil
	}

	profile, err := h.store.ProfileByCustomerID(sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("lookup profile for customer %s: %w", sub.Customer.ID, err)
	}
	if profile == nil {
		h.log.Warn().Str("customer", sub.Customer.ID).Msg("no profile for customer, dropping event")
		return nil
	}

	return h.store.Transact(func(tx store.ProfileStore) error {
		if err := tx.SetProfileBilling(profile.ID, profiles.TierFree, profiles.StatusCanceled); err != nil {
			return fmt.Errorf("downgrade profile %s: %w", profile.ID, err)
		}
		if err := tx.MarkSubscriptionsCanceled(profile.ID); err != nil {
			return fmt.Errorf("cancel subscriptions of %s: %w", profile.ID, err)
		}
		return nil
	})
}

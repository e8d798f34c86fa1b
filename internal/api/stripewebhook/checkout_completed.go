package stripewebhook

import (
	"errors"
	"fmt"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/subscriptions"
	"github.com/aaron24estrada/Binge-Calendar/internal/store"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutSessionCompleted grants pro after a successful checkout and
// mirrors the new subscription. Redelivery is safe: the profile update is an
// unconditional overwrite and the subscription write is an upsert.
func (h *Handler) handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	rawUserID := ""
	if session.Metadata != nil {
		rawUserID = session.Metadata["user_id"]
	}
	if rawUserID == "" {
		if h.cfg.StrictAttribution {
			return errors.New("checkout session missing user_id metadata")
		}
		h.log.Warn().Str("session", session.ID).Msg("no user_id in session metadata, dropping event")
		return nil
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		if h.cfg.StrictAttribution {
			return fmt.Errorf("invalid user_id %q in session metadata: %w", rawUserID, err)
		}
		h.log.Warn().Str("session", session.ID).Str("user_id", rawUserID).
			Msg("unparseable user_id in session metadata, dropping event")
		return nil
	}

	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}

	// The checkout payload carries only the subscription id; fetch the full
	// resource for status and period bounds. Gateway round trips stay
	// outside the store transaction.
	var subData *stripe.Subscription
	if session.Subscription != nil && session.Subscription.ID != "" {
		subData, err = h.gateway.Subscription(session.Subscription.ID)
		if err != nil {
			return fmt.Errorf("fetch subscription %s: %w", session.Subscription.ID, err)
		}
	}

	return h.store.Transact(func(tx store.ProfileStore) error {
		if err := tx.ActivateProfile(userID, customerID); err != nil {
			return fmt.Errorf("activate profile %s: %w", userID, err)
		}
		if subData != nil {
			if err := tx.UpsertSubscription(subscriptionRow(userID, subData)); err != nil {
				return fmt.Errorf("upsert subscription %s: %w", subData.ID, err)
			}
		}
		return nil
	})
}

// subscriptionRow maps a Stripe subscription resource onto the local mirror
// row. Epoch seconds become UTC instants; the status string is kept verbatim.
func subscriptionRow(userID uuid.UUID, sub *stripe.Subscription) *subscriptions.Subscription {
	row := &subscriptions.Subscription{
		UserID:               userID,
		StripeSubscriptionID: sub.ID,
		Status:               string(sub.Status),
		CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		row.StripeCustomerID = sub.Customer.ID
	}
	if t := unixTime(sub.CurrentPeriodStart); t != nil {
		row.CurrentPeriodStart = t
	}
	if t := unixTime(sub.CurrentPeriodEnd); t != nil {
		row.CurrentPeriodEnd = t
	}
	if t := unixTime(sub.TrialStart); t != nil {
		row.TrialStart = t
	}
	if t := unixTime(sub.TrialEnd); t != nil {
		row.TrialEnd = t
	}
	if t := unixTime(sub.CanceledAt); t != nil {
		row.CanceledAt = t
	}
	return row
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

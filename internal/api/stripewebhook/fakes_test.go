package stripewebhook

import (
	"errors"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/subscriptions"
	"github.com/aaron24estrada/Binge-Calendar/internal/store"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

// fakeStore keeps profiles and subscription rows in maps and counts writes,
// so tests can assert both end state and "no mutation happened".
type fakeStore struct {
	profiles map[uuid.UUID]*profiles.Profile
	subs     map[string]*subscriptions.Subscription
	writes   int
	failNext bool
}

func newFakeStore(ps ...*profiles.Profile) *fakeStore {
	f := &fakeStore{
		profiles: map[uuid.UUID]*profiles.Profile{},
		subs:     map[string]*subscriptions.Subscription{},
	}
	for _, p := range ps {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeStore) ProfileByCustomerID(customerID string) (*profiles.Profile, error) {
	for _, p := range f.profiles {
		if p.StripeCustomerID != nil && *p.StripeCustomerID == customerID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ActivateProfile(userID uuid.UUID, customerID string) error {
	if f.failNext {
		return errors.New("store down")
	}
	f.writes++
	if p, ok := f.profiles[userID]; ok {
		p.SubscriptionTier = profiles.TierPro
		p.SubscriptionStatus = profiles.StatusActive
		p.StripeCustomerID = &customerID
	}
	return nil
}

func (f *fakeStore) SetProfileBilling(userID uuid.UUID, tier, status string) error {
	if f.failNext {
		return errors.New("store down")
	}
	f.writes++
	if p, ok := f.profiles[userID]; ok {
		p.SubscriptionTier = tier
		p.SubscriptionStatus = status
	}
	return nil
}

func (f *fakeStore) UpsertSubscription(sub *subscriptions.Subscription) error {
	if f.failNext {
		return errors.New("store down")
	}
	f.writes++
	cp := *sub
	f.subs[sub.StripeSubscriptionID] = &cp
	return nil
}

func (f *fakeStore) MarkSubscriptionsCanceled(userID uuid.UUID) error {
	if f.failNext {
		return errors.New("store down")
	}
	f.writes++
	now := time.Now()
	for _, s := range f.subs {
		if s.UserID == userID {
			s.Status = profiles.StatusCanceled
			s.CanceledAt = &now
		}
	}
	return nil
}

func (f *fakeStore) Transact(fn func(store.ProfileStore) error) error {
	return fn(f)
}

type fakeGateway struct {
	sub   *stripe.Subscription
	err   error
	calls int
}

func (f *fakeGateway) Subscription(id string) (*stripe.Subscription, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

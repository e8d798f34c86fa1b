// Package stripegw wraps the Stripe API behind an injectable client so
// handlers never touch the package-level stripe globals.
package stripegw

import (
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

type Client struct {
	api *client.API
}

func New(apiKey string) *Client {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Client{api: api}
}

// Subscription fetches the full subscription resource. The checkout webhook
// uses it to enrich the slim checkout payload with period bounds and status.
func (c *Client) Subscription(id string) (*stripe.Subscription, error) {
	return c.api.Subscriptions.Get(id, nil)
}

func (c *Client) CreateCustomer(params *stripe.CustomerParams) (*stripe.Customer, error) {
	return c.api.Customers.New(params)
}

func (c *Client) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.New(params)
}

func (c *Client) CreateBillingPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	return c.api.BillingPortalSessions.New(params)
}

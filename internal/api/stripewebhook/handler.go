// Package stripewebhook receives signed Stripe events and mirrors
// subscription state onto local profiles.
package stripewebhook

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aaron24estrada/Binge-Calendar/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

const maxBodyBytes = 65536

// BillingGateway is the slice of the Stripe API the handlers call back into.
type BillingGateway interface {
	Subscription(id string) (*stripe.Subscription, error)
}

type Config struct {
	WebhookSecret string

	// StrictAttribution turns an unattributable checkout event into a
	// processing error (Stripe redelivers) instead of a logged drop.
	StrictAttribution bool
}

type Handler struct {
	store   store.ProfileStore
	gateway BillingGateway
	cfg     Config
	log     zerolog.Logger
}

func New(st store.ProfileStore, gw BillingGateway, cfg Config) *Handler {
	return &Handler{
		store:   st,
		gateway: gw,
		cfg:     cfg,
		log:     log.With().Str("component", "stripe-webhook").Logger(),
	}
}

// Handle is the POST endpoint Stripe delivers events to. Verification runs
// over the untouched request body; re-serializing parsed JSON would break
// the signature.
func (h *Handler) Handle(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn().Err(err).Msg("signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if err := h.dispatch(event); err != nil {
		h.log.Error().Err(err).Str("event", event.ID).Str("type", string(event.Type)).
			Msg("webhook processing failed")
		eventsTotal.WithLabelValues(string(event.Type), outcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// dispatch routes one verified event to its handler. Payloads are decoded
// per event type, only after the type is known.
func (h *Handler) dispatch(event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return h.observe(event, h.handleCheckoutSessionCompleted(&session))

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return h.observe(event, h.handleSubscriptionUpdated(&sub))

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return h.observe(event, h.handleSubscriptionDeleted(&sub))

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}
		h.handleInvoicePaymentSucceeded(&invoice)
		return h.observe(event, nil)

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}
		h.handleInvoicePaymentFailed(&invoice)
		return h.observe(event, nil)

	default:
		// Stripe grows new event types; acknowledge them so it does not
		// hammer the endpoint with redeliveries.
		h.log.Info().Str("type", string(event.Type)).Msg("unhandled event type")
		eventsTotal.WithLabelValues(string(event.Type), outcomeIgnored).Inc()
		return nil
	}
}

func (h *Handler) observe(event stripe.Event, err error) error {
	if err == nil {
		eventsTotal.WithLabelValues(string(event.Type), outcomeOK).Inc()
	}
	return err
}

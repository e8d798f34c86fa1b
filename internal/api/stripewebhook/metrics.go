package stripewebhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeIgnored = "ignored"
)

var eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bingecalendar",
	Subsystem: "stripe_webhook",
	Name:      "events_total",
	Help:      "Stripe webhook events by type and outcome.",
}, []string{"type", "outcome"})

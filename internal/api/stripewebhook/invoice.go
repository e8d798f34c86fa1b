package stripewebhook

import "github.com/stripe/stripe-go/v75"

// Invoice events are record-only for now. Dunning mail and payment-retry
// notifications would hang off these once a delivery channel exists.

func (h *Handler) handleInvoicePaymentSucceeded(invoice *stripe.Invoice) {
	h.log.Info().
		Str("invoice", invoice.ID).
		Str("customer", invoiceCustomerID(invoice)).
		Int64("amount_paid", invoice.AmountPaid).
		Msg("invoice payment succeeded")
}

func (h *Handler) handleInvoicePaymentFailed(invoice *stripe.Invoice) {
	h.log.Warn().
		Str("invoice", invoice.ID).
		Str("customer", invoiceCustomerID(invoice)).
		Int64("amount_due", invoice.AmountDue).
		Msg("invoice payment failed")
}

func invoiceCustomerID(invoice *stripe.Invoice) string {
	if invoice.Customer == nil {
		return ""
	}
	return invoice.Customer.ID
}

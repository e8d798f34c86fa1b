package billing

import (
	"net/http"

	"github.com/aaron24estrada/Binge-Calendar/config"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/plans"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"
	"github.com/aaron24estrada/Binge-Calendar/internal/infra/stripegw"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

type Handler struct {
	db  *gorm.DB
	gw  *stripegw.Client
	cfg *config.Config
}

func NewHandler(db *gorm.DB, gw *stripegw.Client, cfg *config.Config) *Handler {
	return &Handler{db: db, gw: gw, cfg: cfg}
}

// POST /create-checkout-session
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PriceID string `json:"price_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id"})
		return
	}

	// allow-list the price id against configured plans
	if !h.knownPrice(body.PriceID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown price_id"})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var profile profiles.Profile
	if err := h.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
		return
	}

	customerID, err := h.ensureCustomer(&profile)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to ensure stripe customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(h.cfg.AppURL + "/dashboard?checkout=success"),
		CancelURL:  stripe.String(h.cfg.AppURL + "/pricing?checkout=canceled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(body.PriceID), Quantity: stripe.Int64(1)},
		},

		// The webhook attributes the completed checkout through this metadata.
		ClientReferenceID: stripe.String(profile.ID.String()),
		Metadata: map[string]string{
			"user_id": profile.ID.String(),
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": profile.ID.String(),
			},
		},
	}

	session, err := h.gw.CreateCheckoutSession(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

// POST /billing-portal
func (h *Handler) CreateBillingPortal(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var profile profiles.Profile
	if err := h.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
		return
	}
	if profile.StripeCustomerID == nil || *profile.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	portal, err := h.gw.CreateBillingPortalSession(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*profile.StripeCustomerID),
		ReturnURL: stripe.String(h.cfg.AppURL + "/account"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}

func (h *Handler) knownPrice(priceID string) bool {
	for _, p := range plans.Available(h.cfg.ProMonthlyPriceID, h.cfg.ProYearlyPriceID) {
		if p.StripePriceID == priceID {
			return true
		}
	}
	return false
}

// ensureCustomer returns the profile's Stripe customer id, creating the
// customer on first purchase.
func (h *Handler) ensureCustomer(profile *profiles.Profile) (string, error) {
	if profile.StripeCustomerID != nil && *profile.StripeCustomerID != "" {
		return *profile.StripeCustomerID, nil
	}

	cus, err := h.gw.CreateCustomer(&stripe.CustomerParams{
		Email: stripe.String(profile.Email),
		Metadata: map[string]string{
			"user_id": profile.ID.String(),
			"app_env": h.cfg.AppEnv,
		},
	})
	if err != nil {
		return "", err
	}

	if err := h.db.Model(&profiles.Profile{}).
		Where("id = ?", profile.ID).
		Update("stripe_customer_id", cus.ID).Error; err != nil {
		return "", err
	}

	profile.StripeCustomerID = stripe.String(cus.ID)
	return cus.ID, nil
}

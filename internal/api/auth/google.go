package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func (h *Handler) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.GoogleClientID,
		ClientSecret: h.cfg.GoogleClientSecret,
		RedirectURL:  h.cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	if h.cfg.GoogleClientID == "" {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Google sign-in not configured"})
		return
	}

	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	// state lives in an HttpOnly cookie for the round trip
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)

	url := h.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	tok, err := h.googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := h.verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.findOrCreateGoogleProfile(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create profile"})
		return
	}

	tokenString, err := h.issueToken(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	c.Redirect(http.StatusFound, h.cfg.AppURL+"/auth/callback?token="+tokenString)
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (h *Handler) verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: h.cfg.GoogleClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	return &claims, nil
}

func (h *Handler) findOrCreateGoogleProfile(gc *googleIDClaims) (*profiles.Profile, error) {
	var profile profiles.Profile

	if err := h.db.Where("google_sub = ?", gc.Sub).First(&profile).Error; err == nil {
		return &profile, nil
	}

	// existing local account with the same email: link it
	if err := h.db.Where("email = ?", gc.Email).First(&profile).Error; err == nil {
		if profile.GoogleSub == nil {
			sub := gc.Sub
			profile.GoogleSub = &sub
			profile.AuthProvider = "google"
			if err := h.db.Save(&profile).Error; err != nil {
				return nil, err
			}
		}
		return &profile, nil
	}

	sub := gc.Sub
	trialEnd := time.Now().AddDate(0, 0, trialDays)
	profile = profiles.Profile{
		Email:              gc.Email,
		AuthProvider:       "google",
		GoogleSub:          &sub,
		Role:               "user",
		Timezone:           "UTC",
		SubscriptionTier:   profiles.TierFree,
		SubscriptionStatus: profiles.StatusInactive,
		TrialEnd:           &trialEnd,
	}
	if gc.Name != "" {
		name := gc.Name
		profile.FullName = &name
	}
	if gc.Picture != "" {
		pic := gc.Picture
		profile.AvatarURL = &pic
	}

	if err := h.db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

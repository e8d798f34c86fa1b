package plansapi

import (
	"net/http"

	"github.com/aaron24estrada/Binge-Calendar/config"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/plans"
	"github.com/aaron24estrada/Binge-Calendar/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// GET /plans
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"plans": plans.Available(h.cfg.ProMonthlyPriceID, h.cfg.ProYearlyPriceID),
		"limits": gin.H{
			profiles.TierFree: plans.ForTier(profiles.TierFree),
			profiles.TierPro:  plans.ForTier(profiles.TierPro),
		},
	})
}

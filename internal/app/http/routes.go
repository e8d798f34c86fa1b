package routes

import (
	"github.com/aaron24estrada/Binge-Calendar/config"
	adminapi "github.com/aaron24estrada/Binge-Calendar/internal/api/admin"
	authapi "github.com/aaron24estrada/Binge-Calendar/internal/api/auth"
	"github.com/aaron24estrada/Binge-Calendar/internal/api/billing"
	"github.com/aaron24estrada/Binge-Calendar/internal/api/calendarapi"
	"github.com/aaron24estrada/Binge-Calendar/internal/api/eventsapi"
	"github.com/aaron24estrada/Binge-Calendar/internal/api/notificationsapi"
	"github.com/aaron24estrada/Binge-Calendar/internal/api/plansapi"
	"github.com/aaron24estrada/Binge-Calendar/internal/api/profilesapi"
	"github.com/aaron24estrada/Binge-Calendar/internal/api/stripewebhook"
	"github.com/aaron24estrada/Binge-Calendar/internal/app/http/middleware"
	"github.com/aaron24estrada/Binge-Calendar/internal/infra/stripegw"
	"github.com/aaron24estrada/Binge-Calendar/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, gw *stripegw.Client, cfg *config.Config) {
	webhook := stripewebhook.New(store.NewGorm(db), gw, stripewebhook.Config{
		WebhookSecret:     cfg.StripeWebhookSecret,
		StrictAttribution: cfg.StrictWebhookAttribution,
	})
	auth := authapi.NewHandler(db, cfg)
	billingHandler := billing.NewHandler(db, gw, cfg)
	profilesHandler := profilesapi.NewHandler(db)
	eventsHandler := eventsapi.NewHandler(db)
	calendarHandler := calendarapi.NewHandler(db)
	notificationsHandler := notificationsapi.NewHandler(db)
	plansHandler := plansapi.NewHandler(cfg)
	adminHandler := adminapi.NewHandler(db)

	// The webhook stays outside the sanitizer: its body must reach the
	// signature check byte for byte.
	r.POST("/api/stripe/webhook", webhook.Handle)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())
	public.POST("/register", auth.Register)
	public.POST("/login", auth.Login)
	public.GET("/auth/google", auth.GoogleStart)
	public.GET("/auth/google/callback", auth.GoogleCallback)
	public.GET("/plans", plansHandler.ListPlans)
	public.GET("/events", eventsHandler.ListEvents)
	public.GET("/events/:id", eventsHandler.GetEvent)
	public.GET("/categories", eventsHandler.ListCategories)

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.SanitizeInputMiddleware())
	authed.GET("/me", profilesHandler.GetCurrentProfile)
	authed.PUT("/me", profilesHandler.UpdateCurrentProfile)
	authed.POST("/change-password", auth.ChangePassword)

	authed.POST("/create-checkout-session", billingHandler.CreateCheckoutSession)
	authed.POST("/billing-portal", billingHandler.CreateBillingPortal)

	authed.GET("/calendar", calendarHandler.ListEntries)
	authed.GET("/calendar/stats", middleware.RequirePro(db), calendarHandler.Stats)
	authed.POST("/calendar", calendarHandler.AddEntry)
	authed.PUT("/calendar/:id", calendarHandler.UpdateEntry)
	authed.DELETE("/calendar/:id", calendarHandler.RemoveEntry)

	authed.GET("/notifications", notificationsHandler.ListNotifications)
	authed.POST("/notifications/:id/read", notificationsHandler.MarkRead)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireRole("admin"), middleware.SanitizeInputMiddleware())
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/profiles", adminHandler.ListProfiles)
	admin.GET("/profiles/:id", adminHandler.GetProfile)
	admin.POST("/events", eventsHandler.CreateEvent)
	admin.PUT("/events/:id", eventsHandler.UpdateEvent)
	admin.DELETE("/events/:id", eventsHandler.DeleteEvent)
	admin.POST("/categories", eventsHandler.CreateCategory)
}

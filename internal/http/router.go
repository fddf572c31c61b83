package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	intconfig "wedding/internal/config"
	"wedding/internal/domain/models"
	h "wedding/internal/http/handlers"
	"wedding/internal/http/middleware"
	"wedding/internal/metrics"
)

// NewRouter mounts the JSON API, the public invitation routes and /metrics.
func NewRouter(env intconfig.Env, a *h.API, loginLimiter, inviteLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.Metrics(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	requireUser := middleware.RequireAuth(a.Auth)
	requireHost := middleware.RequireRoles(models.RoleAdmin, models.RoleHost)
	requireAdmin := middleware.RequireRoles(models.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", a.DBCheck)
		api.GET("/routes", h.Routes)

		api.GET("/event", a.GetEvent)
		api.GET("/event/countdown", a.GetCountdown)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", loginLimiter.Handler(), a.Login)
		auth.POST("/logout", requireUser, a.Logout)
		auth.GET("/me", requireUser, a.Me)

		// Dashboard accounts
		users := api.Group("/users", requireUser, requireAdmin)
		users.GET("", a.ListUsers)
		users.POST("", a.CreateUser)

		// Guest directory
		guests := api.Group("/guests", requireUser)
		guests.GET("", a.ListGuests)
		guests.GET("/:id", a.GetGuest)
		guests.POST("", requireHost, a.CreateGuest)
		guests.PUT("/:id", requireHost, a.UpdateGuest)
		guests.DELETE("/:id", requireHost, a.DeleteGuest)

		// Tie-money ledger
		payments := api.Group("/payments", requireUser)
		payments.GET("", a.ListPayments)
		payments.GET("/summary", a.PaymentSummary)
		payments.GET("/suggestions", a.PaymentNameSuggestions)
		payments.GET("/export.xlsx", a.ExportPaymentsXLSX)
		payments.GET("/export.pdf", a.ExportPaymentsPDF)
		payments.GET("/:id", a.GetPayment)
		payments.POST("", requireHost, a.CreatePayment)
		payments.PUT("/:id", requireHost, a.UpdatePayment)
		payments.DELETE("/:id", requireHost, a.DeletePayment)
	}

	// Public invitation links
	wedding := r.Group("/wedding")
	{
		wedding.GET("/:guestId", inviteLimiter.Handler(), a.OpenInvitation)
		wedding.GET("/:guestId/sessions/:sid", a.GetInvitationSession)
		wedding.POST("/:guestId/sessions/:sid/events", a.FireInvitationEvent)
	}

	h.SetRouter(r)
	return r
}

package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "corptransit/internal/config"
	h "corptransit/internal/http/handlers"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/tenant"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.SchemaHeader},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	resolver := tenant.Resolver{
		Registry:         repositories.TenantRepository{},
		Cache:            tenant.NewSchemaCache(env.RedisAddr),
		DefaultSubdomain: env.DefaultSubdomain,
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Everything below runs inside a tenant partition.
		scoped := api.Group("")
		scoped.Use(middleware.Tenant(resolver))

		scoped.GET("/whoami", h.WhoAmI)

		// Auth
		auth := scoped.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Bookings
		bookings := scoped.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/complete", h.CompleteBooking)
		bookings.GET("/:id/payments", h.ListBookingPayments)
		bookings.GET("/:id/receipt", h.GetBookingReceiptPDF)

		// Payments
		payments := scoped.Group("/payments")
		payments.POST("/orders", h.CreatePaymentOrder)
		payments.POST("/callback", h.PaymentCallback)
	}

	h.SetRouter(r)
	return r
}

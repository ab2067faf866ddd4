package handlers

import (
	intconfig "corptransit/internal/config"
	"corptransit/internal/events"
	"corptransit/internal/gateway"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	jwtSecret = []byte("super-secret-key-change-me")

	callbackVerifier gateway.Verifier = gateway.AllowAll{}

	eventPublisher events.Publisher = events.Nop{}
)

// Configure applies runtime settings to the handler package. Called once
// from main before the router starts serving.
func Configure(env intconfig.Env) {
	if env.JWTSecret != "" {
		jwtSecret = []byte(env.JWTSecret)
	}
	if env.GatewayWebhookSecret != "" {
		callbackVerifier = gateway.HMACVerifier{Secret: []byte(env.GatewayWebhookSecret)}
	}
}

// SetEventPublisher wires the broker publisher; nil keeps events off.
func SetEventPublisher(p events.Publisher) {
	eventPublisher = p
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		Events:      eventPublisher,
		RequestID:   middleware.GetRequestID(c),
	}
}

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Bookings:  bookingService(c),
		Verifier:  callbackVerifier,
		RequestID: middleware.GetRequestID(c),
	}
}

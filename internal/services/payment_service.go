package services

import (
	"encoding/json"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/gateway"
	"corptransit/internal/tenant"
	"corptransit/internal/utils"
)

// Outcomes the client reports after a gateway payment attempt.
const (
	CallbackOutcomeSuccess   = "success"
	CallbackOutcomeDismissed = "user-dismissed"
	CallbackOutcomeFailed    = "failed"
)

// Callback is the client-reported gateway callback for one booking.
type Callback struct {
	BookingID        int64   `json:"booking_id"`
	GatewayOrderID   string  `json:"gateway_order_id"`
	GatewayPaymentID string  `json:"gateway_payment_id"`
	GatewaySignature string  `json:"gateway_signature"`
	Outcome          string  `json:"outcome"`
	PaymentMethod    string  `json:"payment_method"`
	Amount           float64 `json:"amount"`
}

// PaymentService reconciles gateway callbacks into lifecycle
// transitions. Callbacks are not idempotent at the audit-trail level:
// the same callback twice produces two payment rows, dedup belongs to
// the caller.
type PaymentService struct {
	Bookings  BookingService
	Verifier  gateway.Verifier
	RequestID string
}

func (s PaymentService) verifier() gateway.Verifier {
	if s.Verifier != nil {
		return s.Verifier
	}
	// Matches the legacy flow: client-reported ids and signatures are
	// stored as opaque metadata without verification. Wire an
	// HMACVerifier to close the gap.
	return gateway.AllowAll{}
}

// HandleCallback maps the reported outcome onto the booking lifecycle:
// success -> waiting_driver, user-dismissed/failed -> payment_failed.
func (s PaymentService) HandleCallback(schema tenant.SchemaHandle, cb Callback) (TransitionResult, error) {
	if cb.BookingID <= 0 {
		return TransitionResult{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	switch cb.Outcome {
	case CallbackOutcomeSuccess, CallbackOutcomeDismissed, CallbackOutcomeFailed:
	default:
		return TransitionResult{}, domain.ValidationError{Field: "outcome", Msg: "unknown outcome " + cb.Outcome}
	}

	payload := gateway.CallbackPayload{
		OrderID:   cb.GatewayOrderID,
		PaymentID: cb.GatewayPaymentID,
		Signature: cb.GatewaySignature,
	}
	if !s.verifier().Verify(payload) {
		utils.LogEvent(s.RequestID, "payment", "callback_rejected",
			"signature verification failed, order_id="+cb.GatewayOrderID)
		return TransitionResult{}, domain.ValidationError{Field: "gateway_signature", Msg: "signature rejected"}
	}

	meta, _ := json.Marshal(map[string]string{
		"gateway_order_id":   cb.GatewayOrderID,
		"gateway_payment_id": cb.GatewayPaymentID,
		"gateway_signature":  cb.GatewaySignature,
	})
	attempt := models.PaymentAttempt{
		Amount:        cb.Amount,
		PaymentType:   "gateway",
		PaymentMethod: cb.PaymentMethod,
		TransactionID: cb.GatewayPaymentID,
		Metadata:      string(meta),
	}

	bookings := s.Bookings
	bookings.RequestID = s.RequestID

	switch cb.Outcome {
	case CallbackOutcomeSuccess:
		return bookings.MarkPaymentSuccess(schema, cb.BookingID, attempt)
	case CallbackOutcomeDismissed:
		return bookings.MarkPaymentFailed(schema, cb.BookingID, "payment dismissed by user", attempt)
	default:
		return bookings.MarkPaymentFailed(schema, cb.BookingID, "payment failed at gateway", attempt)
	}
}

// CreateOrder asks the gateway for an order covering the booking's
// estimated cost. The order id is echoed back later in the callback.
func (s PaymentService) CreateOrder(schema tenant.SchemaHandle, bookingID int64) (gateway.Order, error) {
	booking, err := s.Bookings.Get(schema, bookingID)
	if err != nil {
		return gateway.Order{}, err
	}
	return gateway.CreateOrder(booking.ID, booking.EstimatedCost), nil
}

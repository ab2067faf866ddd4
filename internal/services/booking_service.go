package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/events"
	"corptransit/internal/repositories"
	"corptransit/internal/tenant"
	"corptransit/internal/utils"
)

// createMaxAttempts bounds booking-number regeneration on a uniqueness
// clash. Exceeding it fails the creation, it is never silently dropped.
const createMaxAttempts = 5

// BookingService drives the booking lifecycle:
//
//	pending -> confirmed | waiting_driver | cancelled | payment_failed | completed
//
// cancelled and payment_failed are terminal and carry an audit trail.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	Events      events.Publisher
	RequestID   string

	// RandSuffix overrides the reference-number suffix source; tests use
	// it to force collisions.
	RandSuffix func(n int) string
}

func (s BookingService) bookings() repositories.BookingRepository {
	return s.BookingRepo
}

func (s BookingService) payments() repositories.PaymentRepository {
	return s.PaymentRepo
}

func (s BookingService) suffix() func(int) string {
	if s.RandSuffix != nil {
		return s.RandSuffix
	}
	return utils.RandSuffix
}

// TransitionResult reports a payment-outcome transition. The booking
// status update is the authoritative result; a failed audit insert only
// adds a warning.
type TransitionResult struct {
	Booking  models.Booking `json:"booking"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Create inserts a booking with a generated number, retrying on a
// number collision. A creation arriving with status=cancelled records
// its cancellation audit fields right away.
func (s BookingService) Create(schema tenant.SchemaHandle, in models.BookingInput) (models.Booking, error) {
	if strings.TrimSpace(in.PickupLocation) == "" {
		return models.Booking{}, domain.ValidationError{Field: "pickup_location", Msg: "wajib diisi"}
	}
	if strings.TrimSpace(in.DropoffLocation) == "" {
		return models.Booking{}, domain.ValidationError{Field: "dropoff_location", Msg: "wajib diisi"}
	}
	if in.Status != "" && !models.ValidBookingStatus(in.Status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status " + in.Status}
	}
	if in.BookingType != "" && in.BookingType != models.BookingTypeNormal && in.BookingType != models.BookingTypePool {
		return models.Booking{}, domain.ValidationError{Field: "booking_type", Msg: "unknown booking type " + in.BookingType}
	}
	if in.PassengerCount <= 0 {
		in.PassengerCount = 1
	}

	var (
		id      int64
		lastErr error
	)
	for attempt := 1; attempt <= createMaxAttempts; attempt++ {
		number := utils.NewRefNoWith("BKG", s.suffix())
		id, lastErr = s.bookings().Insert(schema, number, in)
		if lastErr == nil {
			break
		}
		if !domain.IsConflict(lastErr) {
			return models.Booking{}, lastErr
		}
		utils.LogEvent(s.RequestID, "booking", "create_retry",
			fmt.Sprintf("attempt=%d number=%s", attempt, number))
	}
	if lastErr != nil {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking_number",
			Msg:      fmt.Sprintf("could not generate a unique number after %d attempts", createMaxAttempts),
			Err:      lastErr,
		}
	}

	booking, err := s.bookings().GetByID(schema, id)
	if err != nil {
		return models.Booking{}, err
	}

	if in.Status == models.BookingStatusCancelled {
		booking, err = s.bookings().UpdateStatus(schema, id, models.BookingStatusCancelled, repositories.StatusExtra{
			CancellationReason: in.CancellationReason,
			SetCancelledAt:     true,
		})
		if err != nil {
			return models.Booking{}, err
		}
	}

	s.publish(schema, "booking.created", booking)
	return booking, nil
}

func (s BookingService) Get(schema tenant.SchemaHandle, id int64) (models.Booking, error) {
	return s.bookings().GetByID(schema, id)
}

func (s BookingService) Cancel(schema tenant.SchemaHandle, id int64, reason string) (models.Booking, error) {
	booking, err := s.bookings().UpdateStatus(schema, id, models.BookingStatusCancelled, repositories.StatusExtra{
		CancellationReason: strings.TrimSpace(reason),
		SetCancelledAt:     true,
	})
	if err != nil {
		return models.Booking{}, err
	}
	s.publish(schema, "booking.cancelled", booking)
	return booking, nil
}

func (s BookingService) Confirm(schema tenant.SchemaHandle, id int64) (models.Booking, error) {
	booking, err := s.bookings().UpdateStatus(schema, id, models.BookingStatusConfirmed, repositories.StatusExtra{})
	if err != nil {
		return models.Booking{}, err
	}
	s.publish(schema, "booking.confirmed", booking)
	return booking, nil
}

func (s BookingService) Complete(schema tenant.SchemaHandle, id int64) (models.Booking, error) {
	booking, err := s.bookings().UpdateStatus(schema, id, models.BookingStatusCompleted, repositories.StatusExtra{})
	if err != nil {
		return models.Booking{}, err
	}
	s.publish(schema, "booking.completed", booking)
	return booking, nil
}

// Update merges only the supplied fields into the booking.
func (s BookingService) Update(schema tenant.SchemaHandle, id int64, patch models.BookingUpdate) (models.Booking, error) {
	if patch.BookingType != nil {
		if t := *patch.BookingType; t != models.BookingTypeNormal && t != models.BookingTypePool {
			return models.Booking{}, domain.ValidationError{Field: "booking_type", Msg: "unknown booking type " + t}
		}
	}
	return s.bookings().Update(schema, id, patch)
}

// MarkPaymentSuccess moves the booking to waiting_driver and appends a
// success payment row. The audit insert failing does not fail the
// transition.
func (s BookingService) MarkPaymentSuccess(schema tenant.SchemaHandle, id int64, attempt models.PaymentAttempt) (TransitionResult, error) {
	booking, err := s.bookings().UpdateStatus(schema, id, models.BookingStatusWaitingDriver, repositories.StatusExtra{})
	if err != nil {
		return TransitionResult{}, err
	}

	res := TransitionResult{Booking: booking}
	s.recordPayment(schema, &res, attempt, models.PaymentStatusSuccess,
		time.Now().Format("2006-01-02 15:04:05"))
	s.publish(schema, "booking.payment_success", booking)
	return res, nil
}

// MarkPaymentFailed moves the booking to payment_failed with the audit
// fields set, and appends a failed payment row on a best-effort basis.
func (s BookingService) MarkPaymentFailed(schema tenant.SchemaHandle, id int64, reason string, attempt models.PaymentAttempt) (TransitionResult, error) {
	if strings.TrimSpace(reason) == "" {
		reason = "payment failed"
	}
	booking, err := s.bookings().UpdateStatus(schema, id, models.BookingStatusPaymentFailed, repositories.StatusExtra{
		CancellationReason: reason,
		SetCancelledAt:     true,
	})
	if err != nil {
		return TransitionResult{}, err
	}

	res := TransitionResult{Booking: booking}
	s.recordPayment(schema, &res, attempt, models.PaymentStatusFailed, "")
	s.publish(schema, "booking.payment_failed", booking)
	return res, nil
}

func (s BookingService) recordPayment(schema tenant.SchemaHandle, res *TransitionResult, attempt models.PaymentAttempt, status, paymentDate string) {
	amount := attempt.Amount
	if amount == 0 {
		amount = res.Booking.EstimatedCost
	}
	p := models.Payment{
		PaymentNumber: utils.NewRefNoWith("PAY", s.suffix()),
		BookingID:     res.Booking.ID,
		Amount:        amount,
		PaymentType:   attempt.PaymentType,
		PaymentMethod: attempt.PaymentMethod,
		PaymentStatus: status,
		TransactionID: attempt.TransactionID,
		Metadata:      attempt.Metadata,
		PaymentDate:   paymentDate,
	}
	if _, err := s.payments().Insert(schema, p); err != nil {
		// Secondary bookkeeping only; the status change above already
		// decided the outcome.
		utils.LogEvent(s.RequestID, "booking", "payment_audit",
			fmt.Sprintf("booking_id=%d insert warning: %v", res.Booking.ID, err))
		res.Warnings = append(res.Warnings, "payment record not written: "+err.Error())
	}
}

func (s BookingService) publish(schema tenant.SchemaHandle, event string, booking models.Booking) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishBookingEvent(context.Background(), schema.Name(), event, booking); err != nil {
		utils.LogEvent(s.RequestID, "booking", "publish_event", event+" failed: "+err.Error())
	}
}

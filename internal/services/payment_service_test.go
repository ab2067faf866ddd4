package services

import (
	"testing"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/gateway"
	"corptransit/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPaymentService(t *testing.T) (PaymentService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := PaymentService{
		Bookings: BookingService{
			BookingRepo: repositories.BookingRepository{DB: db},
			PaymentRepo: repositories.PaymentRepository{DB: db},
		},
	}
	return svc, mock, func() { db.Close() }
}

func TestHandleCallbackSuccess(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectExec("UPDATE `tenant_acme`.`bookings` SET status").
		WithArgs("waiting_driver", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `tenant_acme`.`bookings` WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(1, "BKG-TEST-0001", "waiting_driver", "", ""))
	mock.ExpectExec("INSERT INTO `tenant_acme`.`payments`").
		WithArgs(sqlmock.AnyArg(), int64(1), 150000.0, "gateway", sqlmock.AnyArg(), "success", "p1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	res, err := svc.HandleCallback(testSchema(t), Callback{
		BookingID:        1,
		GatewayOrderID:   "o1",
		GatewayPaymentID: "p1",
		GatewaySignature: "sig",
		Outcome:          CallbackOutcomeSuccess,
	})
	if err != nil {
		t.Fatalf("callback error: %v", err)
	}
	if res.Booking.Status != models.BookingStatusWaitingDriver {
		t.Fatalf("status = %q, want waiting_driver", res.Booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHandleCallbackDismissedMapsToPaymentFailed(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectExec("UPDATE `tenant_acme`.`bookings` SET status").
		WithArgs("payment_failed", "payment dismissed by user", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `tenant_acme`.`bookings` WHERE id").
		WithArgs(int64(2)).
		WillReturnRows(bookingRow(2, "BKG-TEST-0002", "payment_failed", "payment dismissed by user", "2025-06-01 12:00:00"))
	mock.ExpectExec("INSERT INTO `tenant_acme`.`payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	res, err := svc.HandleCallback(testSchema(t), Callback{
		BookingID: 2,
		Outcome:   CallbackOutcomeDismissed,
	})
	if err != nil {
		t.Fatalf("callback error: %v", err)
	}
	if res.Booking.Status != models.BookingStatusPaymentFailed {
		t.Fatalf("status = %q", res.Booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHandleCallbackUnknownOutcome(t *testing.T) {
	svc, _, done := newPaymentService(t)
	defer done()

	_, err := svc.HandleCallback(testSchema(t), Callback{BookingID: 1, Outcome: "maybe"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandleCallbackRejectedSignature(t *testing.T) {
	svc, _, done := newPaymentService(t)
	defer done()
	svc.Verifier = gateway.HMACVerifier{Secret: []byte("webhook-secret")}

	_, err := svc.HandleCallback(testSchema(t), Callback{
		BookingID:        3,
		GatewayOrderID:   "o3",
		GatewayPaymentID: "p3",
		GatewaySignature: "forged",
		Outcome:          CallbackOutcomeSuccess,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected signature rejection, got %v", err)
	}
}

func TestHandleCallbackInvalidBookingID(t *testing.T) {
	svc, _, done := newPaymentService(t)
	defer done()

	_, err := svc.HandleCallback(testSchema(t), Callback{Outcome: CallbackOutcomeSuccess})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

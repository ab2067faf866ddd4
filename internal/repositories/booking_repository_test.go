package repositories

import (
	"errors"
	"testing"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func acmeSchema(t *testing.T) tenant.SchemaHandle {
	t.Helper()
	h, err := tenant.ParseSchema("tenant_acme")
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	return h
}

func bookingFixtureInput() models.BookingInput {
	return models.BookingInput{
		PickupLocation:  "Kantor Pusat",
		DropoffLocation: "Bandara",
		PassengerCount:  2,
		EstimatedCost:   150000,
	}
}

func confirmedRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_number", "user_id", "booking_type",
		"pickup_location", "pickup_lat", "pickup_lng",
		"dropoff_location", "dropoff_lat", "dropoff_lng",
		"passenger_count", "estimated_cost", "status",
		"scheduled_pickup_time", "cancellation_reason", "cancelled_at",
		"created_at", "updated_at",
	}).AddRow(
		id, "BKG-TEST-0001", 0, "normal",
		"Kantor Pusat", 0.0, 0.0,
		"Bandara", 0.0, 0.0,
		2, 150000.0, "confirmed",
		"", "", "",
		"2025-06-01 08:00:00", "2025-06-01 08:00:00",
	)
}

func TestIsBookingNumberConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "duplicate on booking number index",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'BKG-X' for key 'uniq_booking_number'"},
			want: true,
		},
		{
			name: "duplicate on primary key",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '5' for key 'PRIMARY'"},
			want: false,
		},
		{
			name: "other mysql error",
			err:  &mysql.MySQLError{Number: 1146, Message: "Table 'tenant_acme.bookings' doesn't exist"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}
	for _, tc := range cases {
		if got := IsBookingNumberConflict(tc.err); got != tc.want {
			t.Fatalf("%s: IsBookingNumberConflict = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInsertMapsDuplicateNumberToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO `tenant_acme`.`bookings`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'BKG-X' for key 'uniq_booking_number'"})

	repo := BookingRepository{DB: db}
	_, insertErr := repo.Insert(acmeSchema(t), "BKG-X", bookingFixtureInput())
	if !domain.IsConflict(insertErr) {
		t.Fatalf("expected conflict error, got %v", insertErr)
	}
}

func TestUpdateStatusIncludesAuditColumnsOnlyWhenSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := BookingRepository{DB: db}

	// plain transition: no cancellation_reason, no cancelled_at
	mock.ExpectExec("UPDATE `tenant_acme`.`bookings` SET status = \\?, updated_at = NOW\\(\\) WHERE id = \\?").
		WithArgs("confirmed", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `tenant_acme`.`bookings` WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(confirmedRow(3))

	if _, err := repo.UpdateStatus(acmeSchema(t), 3, "confirmed", StatusExtra{}); err != nil {
		t.Fatalf("update status error: %v", err)
	}

	// terminal transition: reason and cancelled_at travel along
	mock.ExpectExec("UPDATE `tenant_acme`.`bookings` SET status = \\?, updated_at = NOW\\(\\), cancellation_reason = \\?, cancelled_at = NOW\\(\\) WHERE id = \\?").
		WithArgs("cancelled", "no driver", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `tenant_acme`.`bookings` WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(confirmedRow(3))

	if _, err := repo.UpdateStatus(acmeSchema(t), 3, "cancelled", StatusExtra{
		CancellationReason: "no driver",
		SetCancelledAt:     true,
	}); err != nil {
		t.Fatalf("update status error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := BookingRepository{}
	_, err := repo.UpdateStatus(acmeSchema(t), 1, "teleported", StatusExtra{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRepositoriesRefuseZeroSchemaHandle(t *testing.T) {
	var zero tenant.SchemaHandle

	if _, err := (BookingRepository{}).GetByID(zero, 1); !domain.IsInternal(err) {
		t.Fatalf("booking lookup: expected internal error, got %v", err)
	}
	if _, err := (PaymentRepository{}).ListByBooking(zero, 1); !domain.IsInternal(err) {
		t.Fatalf("payment lookup: expected internal error, got %v", err)
	}
}

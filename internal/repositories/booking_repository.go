package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/tenant"

	"github.com/go-sql-driver/mysql"
)

const bookingColumns = `
	id,
	COALESCE(booking_number, ''),
	COALESCE(user_id, 0),
	COALESCE(booking_type, 'normal'),
	COALESCE(pickup_location, ''),
	COALESCE(pickup_lat, 0),
	COALESCE(pickup_lng, 0),
	COALESCE(dropoff_location, ''),
	COALESCE(dropoff_lat, 0),
	COALESCE(dropoff_lng, 0),
	COALESCE(passenger_count, 1),
	COALESCE(estimated_cost, 0),
	COALESCE(status, 'pending'),
	COALESCE(scheduled_pickup_time, ''),
	COALESCE(cancellation_reason, ''),
	COALESCE(cancelled_at, ''),
	COALESCE(created_at, ''),
	COALESCE(updated_at, '')`

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// IsBookingNumberConflict reports whether err is the uniqueness
// violation on the booking_number column. Only this specific conflict
// is retryable; any other 1062 (or any other error) is not.
func IsBookingNumberConflict(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	if myErr.Number != 1062 {
		return false
	}
	return strings.Contains(myErr.Message, "booking_number") ||
		strings.Contains(myErr.Message, "uniq_booking_number")
}

// Insert writes a new booking into the tenant schema and returns its id.
// A duplicate booking number surfaces as domain.ConflictError so the
// service can regenerate and retry.
func (r BookingRepository) Insert(schema tenant.SchemaHandle, number string, in models.BookingInput) (int64, error) {
	if schema.IsZero() {
		return 0, domain.InternalError{Msg: "booking insert without schema handle"}
	}

	status := in.Status
	if status == "" {
		status = models.BookingStatusPending
	}
	bookingType := in.BookingType
	if bookingType == "" {
		bookingType = models.BookingTypeNormal
	}

	var userID any
	if in.UserID > 0 {
		userID = in.UserID
	}
	var scheduled any
	if s := strings.TrimSpace(in.ScheduledPickupTime); s != "" {
		scheduled = s
	}

	res, err := r.db().Exec(`
		INSERT INTO `+schema.Table("bookings")+`
			(booking_number, user_id, booking_type,
			 pickup_location, pickup_lat, pickup_lng,
			 dropoff_location, dropoff_lat, dropoff_lng,
			 passenger_count, estimated_cost, status,
			 scheduled_pickup_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		number, userID, bookingType,
		in.PickupLocation, in.PickupLat, in.PickupLng,
		in.DropoffLocation, in.DropoffLat, in.DropoffLng,
		in.PassengerCount, in.EstimatedCost, status,
		scheduled,
	)
	if err != nil {
		if IsBookingNumberConflict(err) {
			return 0, domain.ConflictError{Resource: "booking_number", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r BookingRepository) GetByID(schema tenant.SchemaHandle, id int64) (models.Booking, error) {
	if schema.IsZero() {
		return models.Booking{}, domain.InternalError{Msg: "booking lookup without schema handle"}
	}
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}

	var b models.Booking
	err := r.db().QueryRow(
		`SELECT `+bookingColumns+` FROM `+schema.Table("bookings")+` WHERE id = ? LIMIT 1`, id,
	).Scan(
		&b.ID, &b.BookingNumber, &b.UserID, &b.BookingType,
		&b.PickupLocation, &b.PickupLat, &b.PickupLng,
		&b.DropoffLocation, &b.DropoffLat, &b.DropoffLng,
		&b.PassengerCount, &b.EstimatedCost, &b.Status,
		&b.ScheduledPickupTime, &b.CancellationReason, &b.CancelledAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// StatusExtra carries the audit fields set alongside a terminal
// transition.
type StatusExtra struct {
	CancellationReason string
	SetCancelledAt     bool
}

// UpdateStatus sets the booking status plus audit fields and returns the
// fresh row. Re-applying the current status is allowed; last write wins
// between concurrent transitions.
func (r BookingRepository) UpdateStatus(schema tenant.SchemaHandle, id int64, status string, extra StatusExtra) (models.Booking, error) {
	if schema.IsZero() {
		return models.Booking{}, domain.InternalError{Msg: "status update without schema handle"}
	}
	if !models.ValidBookingStatus(status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status " + status}
	}

	sets := []string{"status = ?", "updated_at = NOW()"}
	args := []any{status}
	if extra.CancellationReason != "" {
		sets = append(sets, "cancellation_reason = ?")
		args = append(args, extra.CancellationReason)
	}
	if extra.SetCancelledAt {
		sets = append(sets, "cancelled_at = NOW()")
	}
	args = append(args, id)

	if _, err := r.db().Exec(
		`UPDATE `+schema.Table("bookings")+` SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	// RowsAffected is 0 both for a missing row and for a no-op rewrite
	// of the same status, so existence comes from the re-read.
	return r.GetByID(schema, id)
}

// Update merges the non-nil patch fields into the stored row
// (COALESCE semantics) and returns the fresh record.
func (r BookingRepository) Update(schema tenant.SchemaHandle, id int64, patch models.BookingUpdate) (models.Booking, error) {
	if schema.IsZero() {
		return models.Booking{}, domain.InternalError{Msg: "booking update without schema handle"}
	}

	if _, err := r.GetByID(schema, id); err != nil {
		return models.Booking{}, err
	}

	_, err := r.db().Exec(`
		UPDATE `+schema.Table("bookings")+` SET
			pickup_location       = COALESCE(?, pickup_location),
			pickup_lat            = COALESCE(?, pickup_lat),
			pickup_lng            = COALESCE(?, pickup_lng),
			dropoff_location      = COALESCE(?, dropoff_location),
			dropoff_lat           = COALESCE(?, dropoff_lat),
			dropoff_lng           = COALESCE(?, dropoff_lng),
			passenger_count       = COALESCE(?, passenger_count),
			estimated_cost        = COALESCE(?, estimated_cost),
			scheduled_pickup_time = COALESCE(?, scheduled_pickup_time),
			booking_type          = COALESCE(?, booking_type),
			updated_at            = NOW()
		WHERE id = ?`,
		patch.PickupLocation, patch.PickupLat, patch.PickupLng,
		patch.DropoffLocation, patch.DropoffLat, patch.DropoffLng,
		patch.PassengerCount, patch.EstimatedCost,
		patch.ScheduledPickupTime, patch.BookingType,
		id,
	)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return r.GetByID(schema, id)
}

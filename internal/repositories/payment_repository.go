package repositories

import (
	"database/sql"
	"strings"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/tenant"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert appends one payment audit row. Rows are never updated or
// deleted afterwards.
func (r PaymentRepository) Insert(schema tenant.SchemaHandle, p models.Payment) (int64, error) {
	if schema.IsZero() {
		return 0, domain.InternalError{Msg: "payment insert without schema handle"}
	}
	if p.BookingID <= 0 {
		return 0, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	var paymentDate any
	if s := strings.TrimSpace(p.PaymentDate); s != "" {
		paymentDate = s
	}
	var metadata any
	if s := strings.TrimSpace(p.Metadata); s != "" {
		metadata = s
	}

	res, err := r.db().Exec(`
		INSERT INTO `+schema.Table("payments")+`
			(payment_number, booking_id, amount, payment_type,
			 payment_method, payment_status, transaction_id, metadata,
			 payment_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		p.PaymentNumber, p.BookingID, p.Amount, p.PaymentType,
		p.PaymentMethod, p.PaymentStatus, p.TransactionID, metadata,
		paymentDate,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// ListByBooking returns the payment trail for a booking, oldest first.
func (r PaymentRepository) ListByBooking(schema tenant.SchemaHandle, bookingID int64) ([]models.Payment, error) {
	if schema.IsZero() {
		return nil, domain.InternalError{Msg: "payment lookup without schema handle"}
	}
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	rows, err := r.db().Query(`
		SELECT id,
		       COALESCE(payment_number, ''),
		       booking_id,
		       COALESCE(amount, 0),
		       COALESCE(payment_type, ''),
		       COALESCE(payment_method, ''),
		       COALESCE(payment_status, ''),
		       COALESCE(transaction_id, ''),
		       COALESCE(metadata, ''),
		       COALESCE(payment_date, ''),
		       COALESCE(created_at, '')
		FROM `+schema.Table("payments")+`
		WHERE booking_id = ?
		ORDER BY id ASC`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.PaymentNumber, &p.BookingID, &p.Amount,
			&p.PaymentType, &p.PaymentMethod, &p.PaymentStatus,
			&p.TransactionID, &p.Metadata, &p.PaymentDate, &p.CreatedAt,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

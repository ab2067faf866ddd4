package models

const (
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment is an append-only audit row; it is never mutated after insert.
type Payment struct {
	ID            int64   `json:"id"`
	PaymentNumber string  `json:"payment_number"`
	BookingID     int64   `json:"booking_id"`
	Amount        float64 `json:"amount"`
	PaymentType   string  `json:"payment_type"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
	TransactionID string  `json:"transaction_id"`
	Metadata      string  `json:"metadata,omitempty"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// PaymentAttempt carries the data recorded alongside a payment-outcome
// transition.
type PaymentAttempt struct {
	Amount        float64
	PaymentType   string
	PaymentMethod string
	TransactionID string
	Metadata      string
}

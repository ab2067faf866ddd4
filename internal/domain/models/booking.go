package models

// Booking statuses stored verbatim; external consumers match on these
// exact strings.
const (
	BookingStatusPending       = "pending"
	BookingStatusConfirmed     = "confirmed"
	BookingStatusWaitingDriver = "waiting_driver"
	BookingStatusCompleted     = "completed"
	BookingStatusCancelled     = "cancelled"
	BookingStatusPaymentFailed = "payment_failed"
)

const (
	BookingTypeNormal = "normal"
	BookingTypePool   = "pool"
)

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusWaitingDriver,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusPaymentFailed:
		return true
	}
	return false
}

// TerminalBookingStatus reports whether no further transition is expected.
func TerminalBookingStatus(s string) bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusPaymentFailed:
		return true
	}
	return false
}

// Booking is one ride booking inside a tenant schema.
type Booking struct {
	ID                  int64   `json:"id"`
	BookingNumber       string  `json:"booking_number"`
	UserID              int64   `json:"user_id,omitempty"`
	BookingType         string  `json:"booking_type"`
	PickupLocation      string  `json:"pickup_location"`
	PickupLat           float64 `json:"pickup_lat"`
	PickupLng           float64 `json:"pickup_lng"`
	DropoffLocation     string  `json:"dropoff_location"`
	DropoffLat          float64 `json:"dropoff_lat"`
	DropoffLng          float64 `json:"dropoff_lng"`
	PassengerCount      int     `json:"passenger_count"`
	EstimatedCost       float64 `json:"estimated_cost"`
	Status              string  `json:"status"`
	ScheduledPickupTime string  `json:"scheduled_pickup_time,omitempty"`
	CancellationReason  string  `json:"cancellation_reason,omitempty"`
	CancelledAt         string  `json:"cancelled_at,omitempty"`
	CreatedAt           string  `json:"created_at,omitempty"`
	UpdatedAt           string  `json:"updated_at,omitempty"`
}

// BookingInput carries booking creation fields. Status may override the
// default; an empty status means pending.
type BookingInput struct {
	UserID              int64
	BookingType         string
	PickupLocation      string
	PickupLat           float64
	PickupLng           float64
	DropoffLocation     string
	DropoffLat          float64
	DropoffLng          float64
	PassengerCount      int
	EstimatedCost       float64
	Status              string
	ScheduledPickupTime string
	CancellationReason  string
}

// BookingUpdate supports PATCH-style updates via key presence; nil
// pointers leave the stored value untouched.
type BookingUpdate struct {
	PickupLocation      *string
	PickupLat           *float64
	PickupLng           *float64
	DropoffLocation     *string
	DropoffLat          *float64
	DropoffLng          *float64
	PassengerCount      *int
	EstimatedCost       *float64
	ScheduledPickupTime *string
	BookingType         *string
}

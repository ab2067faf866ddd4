package gateway

import (
	"github.com/google/uuid"
)

// Order is the gateway-side order created before the client starts a
// payment attempt. The gateway itself is a black box; order ids are
// opaque strings echoed back in the callback.
type Order struct {
	OrderID   string  `json:"order_id"`
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// CreateOrder stands in for the gateway SDK order-creation call.
func CreateOrder(bookingID int64, amount float64) Order {
	return Order{
		OrderID:   "order_" + uuid.NewString(),
		BookingID: bookingID,
		Amount:    amount,
		Currency:  "IDR",
	}
}

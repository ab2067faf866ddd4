package handlers

import (
	"net/http"

	"corptransit/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	UserID              int64   `json:"user_id"`
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
	ScheduledPickupTime string  `json:"scheduled_pickup_time"`
	CancellationReason  string  `json:"cancellation_reason"`
}

type updateBookingRequest struct {
	PickupLocation      *string  `json:"pickup_location"`
	PickupLat           *float64 `json:"pickup_lat"`
	PickupLng           *float64 `json:"pickup_lng"`
	DropoffLocation     *string  `json:"dropoff_location"`
	DropoffLat          *float64 `json:"dropoff_lat"`
	DropoffLng          *float64 `json:"dropoff_lng"`
	PassengerCount      *int     `json:"passenger_count"`
	EstimatedCost       *float64 `json:"estimated_cost"`
	ScheduledPickupTime *string  `json:"scheduled_pickup_time"`
	BookingType         *string  `json:"booking_type"`
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	schema, ok := schemaOrAbort(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).Create(schema, models.BookingInput{
		UserID:              req.UserID,
		BookingType:         req.BookingType,
		PickupLocation:      req.PickupLocation,
		PickupLat:           req.PickupLat,
		PickupLng:           req.PickupLng,
		DropoffLocation:     req.DropoffLocation,
		DropoffLat:          req.DropoffLat,
		DropoffLng:          req.DropoffLng,
		PassengerCount:      req.PassengerCount,
		EstimatedCost:       req.EstimatedCost,
		Status:              req.Status,
		ScheduledPickupTime: req.ScheduledPickupTime,
		CancellationReason:  req.CancellationReason,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	schema, ok := schemaOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).Get(schema, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PATCH /api/bookings/:id
func UpdateBooking(c *gin.Context) {
	schema, ok := schemaOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c)
	if !ok {
		return
	}
	var req updateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).Update(schema, id, models.BookingUpdate{
		PickupLocation:      req.PickupLocation,
		PickupLat:           req.PickupLat,
		PickupLng:           req.PickupLng,
		DropoffLocation:     req.DropoffLocation,
		DropoffLat:          req.DropoffLat,
		DropoffLng:          req.DropoffLng,
		PassengerCount:      req.PassengerCount,
		EstimatedCost:       req.EstimatedCost,
		ScheduledPickupTime: req.ScheduledPickupTime,
		BookingType:         req.BookingType,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	schema, ok := schemaOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c)
	if !ok {
		return
	}
	var req cancelBookingRequest
	if c.Request.Body != nil {
		// reason is optional; an empty body cancels without one
		_ = c.ShouldBindJSON(&req)
	}

	booking, err := bookingService(c).Cancel(schema, id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/confirm
func ConfirmBooking(c *gin.Context) {
	schema, ok := schemaOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).Confirm(schema, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/complete
func CompleteBooking(c *gin.Context) {
	schema, ok := schemaOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).Complete(schema, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

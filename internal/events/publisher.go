package events

import (
	"context"

	"corptransit/internal/domain/models"
)

// Publisher notifies downstream consumers about booking lifecycle
// transitions. Publishing is best effort everywhere: a failed publish
// is logged by the caller and never fails the transition.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, schema, event string, booking models.Booking) error
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) PublishBookingEvent(context.Context, string, string, models.Booking) error {
	return nil
}

package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"roombooking/internal/domain"
)

type Type string

const (
	BookingCreated Type = "booking.created"
	BookingUpdated Type = "booking.updated"
	BookingDeleted Type = "booking.deleted"
)

// BookingEvent is emitted after a booking change has been committed.
type BookingEvent struct {
	ID         string            `json:"id"`
	Type       Type              `json:"type"`
	Booking    domain.Booking    `json:"booking"`
	RoomStatus domain.RoomStatus `json:"room_status,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewBookingEvent(typ Type, b domain.Booking, status domain.RoomStatus) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		Booking:    b,
		RoomStatus: status,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt BookingEvent) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, evt BookingEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

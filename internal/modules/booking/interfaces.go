package booking

import (
	"context"

	"roombooking/internal/events"
	"roombooking/internal/repository"
)

// BookingRepository is the non-transactional read side used for listings.
type BookingRepository interface {
	GetAllWithDetails(ctx context.Context) ([]repository.BookingDetailsRow, error)
	GetWithDetails(ctx context.Context, id int64) (*repository.BookingDetailsRow, error)
}

// EventPublisher receives committed booking changes.
type EventPublisher interface {
	Publish(ctx context.Context, evt events.BookingEvent) error
}

package domain

import (
	"context"
	"time"
)

// BookingReader is the read side of a unit of work.
type BookingReader interface {
	// FindOverlapping returns bookings of roomID intersecting [start, end),
	// skipping excludeID when it is non-nil.
	FindOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]Booking, error)
}

// UnitOfWork exposes the repository operations available inside a single
// store transaction. Everything done through it commits or rolls back together.
//
// Typical usage:
//
//	err := store.WithinTx(ctx, func(uow UnitOfWork) error {
//		room, err := uow.LockRoom(ctx, id)
//		...
//	})
type UnitOfWork interface {
	BookingReader

	// LockRoom loads the room and holds a write lock on its row until the
	// transaction ends. Returns ErrRecordNotFound when the room does not exist.
	LockRoom(ctx context.Context, roomID int64) (*Room, error)
	SetRoomStatus(ctx context.Context, roomID int64, status RoomStatus) error
	// GetRoom reads the room without locking it.
	GetRoom(ctx context.Context, roomID int64) (*Room, error)

	GetBooking(ctx context.Context, id int64) (*Booking, error)
	CreateBooking(ctx context.Context, b *Booking) error
	UpdateBooking(ctx context.Context, b *Booking) error
	DeleteBooking(ctx context.Context, id int64) error
}

// TxRunner starts units of work. fn's error aborts the transaction and is
// returned unchanged; a nil error commits.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

package booking

import (
	"time"

	"roombooking/internal/domain"
)

type CreateBookingRequest struct {
	Title     string    `json:"title" validate:"required,max=200"`
	RoomID    int64     `json:"room_id" validate:"required,gt=0"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Notes     string    `json:"notes" validate:"max=2000"`

	// set from the authenticated identity, never from the body
	UserID int64 `json:"-"`
}

// UpdateBookingRequest is a partial update; nil fields keep their value.
// RoomID is decoded only so that attempts to move a booking can be rejected.
type UpdateBookingRequest struct {
	Title     *string    `json:"title" validate:"omitempty,max=200"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Notes     *string    `json:"notes" validate:"omitempty,max=2000"`
	RoomID    *int64     `json:"room_id"`
}

type BookingDetails struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	StartTime time.Time          `json:"start_time"`
	EndTime   time.Time          `json:"end_time"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Room      domain.RoomSummary `json:"room"`
	User      domain.UserSummary `json:"user"`
}

type ConflictReport struct {
	RoomID    int64            `json:"room_id"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Available bool             `json:"available"`
	Conflicts []domain.Booking `json:"conflicts"`
}

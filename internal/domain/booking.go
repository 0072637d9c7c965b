package domain

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title" gorm:"not null" validate:"required"`
	RoomID    int64     `json:"room_id" gorm:"not null;index:idx_bookings_room_interval,priority:1" validate:"required"`
	UserID    int64     `json:"user_id" gorm:"not null;index" validate:"required"`
	StartTime time.Time `json:"start_time" gorm:"not null;index:idx_bookings_room_interval,priority:2" validate:"required"`
	EndTime   time.Time `json:"end_time" gorm:"not null" validate:"required"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Room *Room `json:"-" gorm:"foreignKey:RoomID"`
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

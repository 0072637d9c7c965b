package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomBooked      RoomStatus = "booked"
	RoomMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Name      string     `json:"name" gorm:"not null" validate:"required"`
	Capacity  int        `json:"capacity" gorm:"not null" validate:"required,gt=0"`
	Equipment []string   `json:"equipment,omitempty" gorm:"type:text;serializer:json"`
	Status    RoomStatus `json:"status" gorm:"not null;default:available"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RoomSummary is the short room projection attached to booking listings.
type RoomSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

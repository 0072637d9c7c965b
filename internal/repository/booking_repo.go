package repository

import (
	"context"
	"time"

	"roombooking/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title"`
	RoomID    int64     `gorm:"column:room_id"`
	UserID    int64     `gorm:"column:user_id"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:        m.ID,
		Title:     m.Title,
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		StartTime: m.StartTime.UTC(),
		EndTime:   m.EndTime.UTC(),
		Notes:     notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toBookingModel normalises instants to UTC so that every backend compares
// them on the same timeline.
func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:        b.ID,
		Title:     b.Title,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartTime: b.StartTime.UTC(),
		EndTime:   b.EndTime.UTC(),
		Notes:     notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// findOverlapping uses the half-open rule: start1 < end2 AND start2 < end1.
func findOverlapping(ctx context.Context, db *gorm.DB, roomID int64, start, end time.Time, excludeID *int64) ([]domain.Booking, error) {
	q := db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("start_time < ? AND end_time > ?", end.UTC(), start.UTC())
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var rows []bookingModel
	if err := q.Order("start_time ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

type BookingDetailsRow struct {
	ID        int64     `gorm:"column:id"`
	Title     string    `gorm:"column:title"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	RoomID   int64  `gorm:"column:room_id"`
	RoomName string `gorm:"column:room_name"`
	RoomCode string `gorm:"column:room_code"`

	UserID    int64  `gorm:"column:user_id"`
	UserEmail string `gorm:"column:user_email"`
}

func (r *BookingRepository) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings b").
		Select(`
			b.id,
			b.title,
			b.start_time,
			b.end_time,
			b.notes,
			b.created_at,
			b.updated_at,
			b.room_id,
			rm.name AS room_name,
			rm.code AS room_code,
			b.user_id,
			u.email AS user_email
		`).
		Joins("JOIN rooms rm ON rm.id = b.room_id").
		Joins("JOIN users u ON u.id = b.user_id")
}

// GetAllWithDetails returns every booking with its room and owner, latest start first.
func (r *BookingRepository) GetAllWithDetails(ctx context.Context) ([]BookingDetailsRow, error) {
	var rows []BookingDetailsRow
	err := r.detailsQuery(ctx).
		Order("b.start_time DESC, b.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepository) GetWithDetails(ctx context.Context, id int64) (*BookingDetailsRow, error) {
	var rows []BookingDetailsRow
	err := r.detailsQuery(ctx).
		Where("b.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return &rows[0], nil
}

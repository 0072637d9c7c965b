package repository

import (
	"context"
	"time"

	"roombooking/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetAll(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	if room.Equipment == nil {
		room.Equipment = []string{}
	}
	return duplicate(r.db.WithContext(ctx).Create(room).Error)
}

// SetStatus writes the status column directly. Used for out-of-band
// administrative changes such as putting a room under maintenance.
func (r *RoomRepository) SetStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

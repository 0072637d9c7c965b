package catalog

import (
	"context"

	"roombooking/internal/domain"
)

type RoomRepository interface {
	GetAll(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
	SetStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error)
}

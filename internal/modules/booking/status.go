package booking

import (
	"context"
	"fmt"

	"roombooking/internal/domain"
)

// StatusProjector keeps Room.status in step with booking writes. The status is
// a coarse flag: any create marks the room booked and any delete marks it
// available, whatever other bookings remain. Rooms under maintenance are never
// touched; only an administrator moves a room in or out of maintenance.
//
// Both hooks must run in the unit of work that performed the booking write.
type StatusProjector struct{}

func NewStatusProjector() *StatusProjector {
	return &StatusProjector{}
}

// OnBookingAdded returns the room status after the hook ran.
func (p *StatusProjector) OnBookingAdded(ctx context.Context, uow domain.UnitOfWork, room *domain.Room) (domain.RoomStatus, error) {
	return p.project(ctx, uow, room, domain.RoomBooked)
}

func (p *StatusProjector) OnBookingRemoved(ctx context.Context, uow domain.UnitOfWork, room *domain.Room) (domain.RoomStatus, error) {
	return p.project(ctx, uow, room, domain.RoomAvailable)
}

func (p *StatusProjector) project(ctx context.Context, uow domain.UnitOfWork, room *domain.Room, target domain.RoomStatus) (domain.RoomStatus, error) {
	if room.Status == domain.RoomMaintenance || room.Status == target {
		return room.Status, nil
	}

	if err := uow.SetRoomStatus(ctx, room.ID, target); err != nil {
		return "", fmt.Errorf("set room %d status %s: %w", room.ID, target, err)
	}
	room.Status = target
	return target, nil
}

package booking

import (
	"context"
	"errors"
	"testing"

	"roombooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatusProjector(t *testing.T) {
	tests := []struct {
		name      string
		initial   domain.RoomStatus
		added     bool
		want      domain.RoomStatus
		wantWrite bool
	}{
		{"added marks available room booked", domain.RoomAvailable, true, domain.RoomBooked, true},
		{"added keeps booked room booked", domain.RoomBooked, true, domain.RoomBooked, false},
		{"removed marks booked room available", domain.RoomBooked, false, domain.RoomAvailable, true},
		{"removed keeps available room available", domain.RoomAvailable, false, domain.RoomAvailable, false},
		{"added never leaves maintenance", domain.RoomMaintenance, true, domain.RoomMaintenance, false},
		{"removed never leaves maintenance", domain.RoomMaintenance, false, domain.RoomMaintenance, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := new(MockUnitOfWork)
			if tt.wantWrite {
				uow.On("SetRoomStatus", mock.Anything, int64(1), tt.want).Return(nil)
			}
			room := &domain.Room{ID: 1, Status: tt.initial}
			p := NewStatusProjector()

			var (
				got domain.RoomStatus
				err error
			)
			if tt.added {
				got, err = p.OnBookingAdded(context.Background(), uow, room)
			} else {
				got, err = p.OnBookingRemoved(context.Background(), uow, room)
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, room.Status)
			if !tt.wantWrite {
				uow.AssertNotCalled(t, "SetRoomStatus", mock.Anything, mock.Anything, mock.Anything)
			}
			uow.AssertExpectations(t)
		})
	}
}

func TestStatusProjector_WriteError(t *testing.T) {
	boom := errors.New("boom")
	uow := new(MockUnitOfWork)
	uow.On("SetRoomStatus", mock.Anything, int64(1), domain.RoomBooked).Return(boom)

	room := &domain.Room{ID: 1, Status: domain.RoomAvailable}
	_, err := NewStatusProjector().OnBookingAdded(context.Background(), uow, room)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.RoomAvailable, room.Status)
}

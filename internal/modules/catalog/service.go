package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roombooking/internal/domain"
	"roombooking/internal/pkg/utils"
	"roombooking/internal/pkg/validator"

	"go.uber.org/zap"
)

// Service manages the room catalog. It is the administrative collaborator of
// the booking core: the only place a room enters or leaves maintenance.
type Service struct {
	rooms RoomRepository
	log   *zap.Logger
}

func NewService(rooms RoomRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{rooms: rooms, log: log.Named("catalog")}
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

// CreateRoom returns field errors alongside ErrValidation.
func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, map[string]string, error) {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	if fields := validator.Validate(req); fields != nil {
		return nil, fields, ErrValidation
	}

	room := &domain.Room{
		Code:      req.Code,
		Name:      req.Name,
		Capacity:  req.Capacity,
		Equipment: utils.NormalizeTags(req.Equipment),
		Status:    domain.RoomAvailable,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, nil, ErrRoomCodeExists
		}
		return nil, nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("room created", zap.Int64("room_id", room.ID), zap.String("code", room.Code))
	return room, nil, nil
}

// SetMaintenance moves a room into maintenance, or back to available when
// enabled is false. Booking writes never change a room in maintenance.
func (s *Service) SetMaintenance(ctx context.Context, id int64, enabled bool) (*domain.Room, error) {
	status := domain.RoomAvailable
	if enabled {
		status = domain.RoomMaintenance
	}

	room, err := s.rooms.SetStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("set room status: %w", err)
	}

	s.log.Info("room maintenance changed", zap.Int64("room_id", id), zap.Bool("enabled", enabled))
	return room, nil
}

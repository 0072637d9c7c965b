package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roombooking/internal/domain"
	"roombooking/internal/events"
	"roombooking/internal/repository"

	"go.uber.org/zap"
)

// Service is the booking lifecycle manager. Every mutation runs as one unit
// of work: conflict read, write and room status projection commit or roll
// back together. Ordering between concurrent writers for a room comes from
// the store, never from process memory.
type Service struct {
	store     domain.TxRunner
	bookings  BookingRepository
	conflicts *ConflictChecker
	status    *StatusProjector
	events    EventPublisher
	log       *zap.Logger
}

// NewService wires the lifecycle manager. publisher may be nil.
func NewService(store domain.TxRunner, bookings BookingRepository, publisher EventPublisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     store,
		bookings:  bookings,
		conflicts: NewConflictChecker(),
		status:    NewStatusProjector(),
		events:    publisher,
		log:       log.Named("booking"),
	}
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := ValidateCreate(req); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Title:     strings.TrimSpace(req.Title),
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Notes:     req.Notes,
	}

	var roomStatus domain.RoomStatus
	err := s.store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		room, err := s.lockRoom(ctx, uow, b.RoomID)
		if err != nil {
			return err
		}

		conflicts, err := s.conflicts.FindConflicts(ctx, uow, room.ID, b.StartTime, b.EndTime, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		if err := uow.CreateBooking(ctx, b); err != nil {
			return err
		}

		roomStatus, err = s.status.OnBookingAdded(ctx, uow, room)
		return err
	})
	if err != nil {
		if repository.IsExclusionViolation(err) {
			return nil, s.conflictAfterViolation(ctx, "create booking", b.RoomID, b.StartTime, b.EndTime, nil)
		}
		return nil, s.mapError("create booking", err)
	}

	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("room_id", b.RoomID),
		zap.Int64("user_id", b.UserID),
		zap.Time("start_time", b.StartTime),
		zap.Time("end_time", b.EndTime),
	)
	s.publish(ctx, events.BookingCreated, *b, roomStatus)
	return b, nil
}

// UpdateBooking applies a partial update. The room never changes and the
// room status is not recomputed.
func (s *Service) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, err
	}

	var updated domain.Booking
	err := s.store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		current, err := uow.GetBooking(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return &NotFoundError{Resource: "booking", ID: id}
			}
			return fmt.Errorf("load booking: %w", err)
		}

		next := *current
		if req.Title != nil {
			next.Title = strings.TrimSpace(*req.Title)
		}
		if req.Notes != nil {
			next.Notes = *req.Notes
		}
		if req.StartTime != nil {
			next.StartTime = req.StartTime.UTC()
		}
		if req.EndTime != nil {
			next.EndTime = req.EndTime.UTC()
		}
		updated = next
		if !next.StartTime.Before(next.EndTime) {
			return newValidationError("end_time", "must be after start_time")
		}

		if _, err := s.lockRoom(ctx, uow, current.RoomID); err != nil {
			return err
		}

		conflicts, err := s.conflicts.FindConflicts(ctx, uow, current.RoomID, next.StartTime, next.EndTime, &current.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		if err := uow.UpdateBooking(ctx, &next); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return &NotFoundError{Resource: "booking", ID: id}
			}
			return err
		}

		updated.UpdatedAt = next.UpdatedAt
		return nil
	})
	if err != nil {
		if repository.IsExclusionViolation(err) {
			return nil, s.conflictAfterViolation(ctx, "update booking", updated.RoomID, updated.StartTime, updated.EndTime, &id)
		}
		return nil, s.mapError("update booking", err)
	}

	s.log.Info("booking updated",
		zap.Int64("booking_id", updated.ID),
		zap.Int64("room_id", updated.RoomID),
		zap.Time("start_time", updated.StartTime),
		zap.Time("end_time", updated.EndTime),
	)
	s.publish(ctx, events.BookingUpdated, updated, "")
	return &updated, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	var (
		deleted    *domain.Booking
		roomStatus domain.RoomStatus
	)
	err := s.store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		b, err := uow.GetBooking(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return &NotFoundError{Resource: "booking", ID: id}
			}
			return fmt.Errorf("load booking: %w", err)
		}

		room, err := s.lockRoom(ctx, uow, b.RoomID)
		if err != nil {
			return err
		}

		if err := uow.DeleteBooking(ctx, id); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return &NotFoundError{Resource: "booking", ID: id}
			}
			return err
		}

		roomStatus, err = s.status.OnBookingRemoved(ctx, uow, room)
		if err != nil {
			return err
		}

		deleted = b
		return nil
	})
	if err != nil {
		return s.mapError("delete booking", err)
	}

	s.log.Info("booking deleted", zap.Int64("booking_id", id), zap.Int64("room_id", deleted.RoomID))
	s.publish(ctx, events.BookingDeleted, *deleted, roomStatus)
	return nil
}

// ListBookings returns all bookings with room and owner summaries, latest
// start first.
func (s *Service) ListBookings(ctx context.Context) ([]BookingDetails, error) {
	rows, err := s.bookings.GetAllWithDetails(ctx)
	if err != nil {
		s.log.Error("list bookings failed", zap.Error(err))
		return nil, ErrDependencyUnavailable
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, r := range rows {
		out = append(out, toBookingDetails(r))
	}
	return out, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*BookingDetails, error) {
	row, err := s.bookings.GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: id}
		}
		return nil, s.mapError("get booking", err)
	}

	details := toBookingDetails(*row)
	return &details, nil
}

// CheckConflicts is a read-only availability check. The answer is only a hint:
// a later create re-checks under the room lock.
func (s *Service) CheckConflicts(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) (*ConflictReport, error) {
	if err := ValidateInterval(roomID, start, end); err != nil {
		return nil, err
	}
	start, end = start.UTC(), end.UTC()

	var conflicts []domain.Booking
	err := s.store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		if _, err := uow.GetRoom(ctx, roomID); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return &NotFoundError{Resource: "room", ID: roomID}
			}
			return fmt.Errorf("load room: %w", err)
		}

		var err error
		conflicts, err = s.conflicts.FindConflicts(ctx, uow, roomID, start, end, excludeID)
		return err
	})
	if err != nil {
		return nil, s.mapError("check conflicts", err)
	}

	return &ConflictReport{
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *Service) lockRoom(ctx context.Context, uow domain.UnitOfWork, roomID int64) (*domain.Room, error) {
	room, err := uow.LockRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "room", ID: roomID}
		}
		return nil, fmt.Errorf("lock room: %w", err)
	}
	return room, nil
}

// conflictAfterViolation handles the rare case where the exclusion constraint
// rejected a write the conflict check had allowed. The conflicting rows are
// read again so the caller still receives the full list. When they are gone
// by then the write is reported as retryable.
func (s *Service) conflictAfterViolation(ctx context.Context, op string, roomID int64, start, end time.Time, excludeID *int64) error {
	s.log.Warn("exclusion constraint rejected booking write", zap.String("op", op), zap.Int64("room_id", roomID))

	var conflicts []domain.Booking
	err := s.store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		var err error
		conflicts, err = s.conflicts.FindConflicts(ctx, uow, roomID, start, end, excludeID)
		return err
	})
	if err != nil {
		return s.mapError(op+": reread conflicts", err)
	}
	if len(conflicts) == 0 {
		s.log.Warn(op+": conflicting booking no longer present", zap.Int64("room_id", roomID))
		return ErrDependencyUnavailable
	}
	return &ConflictError{Conflicts: conflicts}
}

// mapError passes expected outcomes through and hides infrastructure detail.
func (s *Service) mapError(op string, err error) error {
	var (
		vErr  *ValidationError
		cErr  *ConflictError
		nfErr *NotFoundError
	)
	switch {
	case errors.As(err, &vErr), errors.As(err, &cErr), errors.As(err, &nfErr):
		return err
	case repository.IsUnavailable(err):
		s.log.Error(op+": store unavailable", zap.Error(err))
		return ErrDependencyUnavailable
	default:
		s.log.Error(op+": unexpected failure", zap.Error(err))
		return ErrUnexpected
	}
}

// publish runs after commit. Delivery failures are logged only.
func (s *Service) publish(ctx context.Context, typ events.Type, b domain.Booking, status domain.RoomStatus) {
	if s.events == nil {
		return
	}
	evt := events.NewBookingEvent(typ, b, status)
	if err := s.events.Publish(context.WithoutCancel(ctx), evt); err != nil {
		s.log.Warn("publish booking event failed",
			zap.String("event_type", string(typ)),
			zap.Int64("booking_id", b.ID),
			zap.Error(err),
		)
	}
}

func toBookingDetails(r repository.BookingDetailsRow) BookingDetails {
	var notes string
	if r.Notes != nil {
		notes = *r.Notes
	}
	return BookingDetails{
		ID:        r.ID,
		Title:     r.Title,
		StartTime: r.StartTime.UTC(),
		EndTime:   r.EndTime.UTC(),
		Notes:     notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Room: domain.RoomSummary{
			ID:     r.RoomID,
			Name:   r.RoomName,
			Number: r.RoomCode,
		},
		User: domain.UserSummary{
			ID:    r.UserID,
			Email: r.UserEmail,
		},
	}
}

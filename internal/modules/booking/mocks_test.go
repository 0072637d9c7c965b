package booking

import (
	"context"
	"time"

	"roombooking/internal/domain"
	"roombooking/internal/events"
	"roombooking/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) FindOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockUnitOfWork) LockRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockUnitOfWork) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockUnitOfWork) SetRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockUnitOfWork) CreateBooking(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUnitOfWork) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockUnitOfWork) DeleteBooking(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeTx runs fn against uow. A non-nil beginErr fails before fn runs, like a
// store that cannot open a transaction; beginErrAt does the same for the n-th
// transaction only (1-based).
type fakeTx struct {
	uow        domain.UnitOfWork
	beginErr   error
	beginErrAt map[int]error
	calls      int
}

func (f *fakeTx) WithinTx(_ context.Context, fn func(uow domain.UnitOfWork) error) error {
	f.calls++
	if f.beginErr != nil {
		return f.beginErr
	}
	if err := f.beginErrAt[f.calls]; err != nil {
		return err
	}
	return fn(f.uow)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetAllWithDetails(ctx context.Context) ([]repository.BookingDetailsRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingDetailsRow), args.Error(1)
}

func (m *MockBookingRepository) GetWithDetails(ctx context.Context, id int64) (*repository.BookingDetailsRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BookingDetailsRow), args.Error(1)
}

// recordingPublisher keeps every event it receives.
type recordingPublisher struct {
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.BookingEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"roombooking/internal/database"
	"roombooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	log := zap.NewNop()
	db, err := database.Connect(filepath.Join(t.TempDir(), "repo.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(context.Background(), db, log))
	return db
}

func seedRoomAndUser(t *testing.T, db *gorm.DB) (*domain.Room, *domain.User) {
	t.Helper()
	ctx := context.Background()

	user := &domain.User{Email: "Bob@Example.com", Name: "Bob", PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))

	room := &domain.Room{Code: "C-1", Name: "Cube", Capacity: 2}
	require.NoError(t, NewRoomRepository(db).Create(ctx, room))
	return room, user
}

var base = time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func TestParseIsolation(t *testing.T) {
	tests := []struct {
		in   string
		want sql.IsolationLevel
		err  bool
	}{
		{"", sql.LevelDefault, false},
		{"default", sql.LevelDefault, false},
		{"read_committed", sql.LevelReadCommitted, false},
		{"REPEATABLE_READ", sql.LevelRepeatableRead, false},
		{" serializable ", sql.LevelSerializable, false},
		{"snapshot", sql.LevelDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIsolation(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_WithinTx_CommitAndRollback(t *testing.T) {
	db := setupDB(t)
	room, user := seedRoomAndUser(t, db)
	store := NewStore(db, sql.LevelDefault, time.Second)
	ctx := context.Background()

	err := store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		return uow.CreateBooking(ctx, &domain.Booking{Title: "kept", RoomID: room.ID, UserID: user.ID, StartTime: hour(9), EndTime: hour(10)})
	})
	require.NoError(t, err)

	rollback := errors.New("abort")
	err = store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		if err := uow.CreateBooking(ctx, &domain.Booking{Title: "dropped", RoomID: room.ID, UserID: user.ID, StartTime: hour(11), EndTime: hour(12)}); err != nil {
			return err
		}
		if err := uow.SetRoomStatus(ctx, room.ID, domain.RoomBooked); err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	var count int64
	require.NoError(t, db.Table("bookings").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := NewRoomRepository(db).GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, stored.Status)
}

func TestUnitOfWork_FindOverlappingHalfOpen(t *testing.T) {
	db := setupDB(t)
	room, user := seedRoomAndUser(t, db)
	store := NewStore(db, sql.LevelDefault, time.Second)
	ctx := context.Background()

	var a, b domain.Booking
	require.NoError(t, store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		a = domain.Booking{Title: "a", RoomID: room.ID, UserID: user.ID, StartTime: hour(10), EndTime: hour(11)}
		b = domain.Booking{Title: "b", RoomID: room.ID, UserID: user.ID, StartTime: hour(12), EndTime: hour(13)}
		if err := uow.CreateBooking(ctx, &a); err != nil {
			return err
		}
		return uow.CreateBooking(ctx, &b)
	}))

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		exclude *int64
		want    []int64
	}{
		{"touching both", hour(11), hour(12), nil, []int64{}},
		{"spanning both", hour(9), hour(14), nil, []int64{a.ID, b.ID}},
		{"inside a", hour(10).Add(15 * time.Minute), hour(10).Add(45 * time.Minute), nil, []int64{a.ID}},
		{"excluding a", hour(9), hour(14), &a.ID, []int64{b.ID}},
		{"other zone", time.Date(2030, 1, 2, 17, 30, 0, 0, time.FixedZone("UTC+5", 5*3600)), time.Date(2030, 1, 2, 18, 30, 0, 0, time.FixedZone("UTC+5", 5*3600)), nil, []int64{b.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []domain.Booking
			require.NoError(t, store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
				var err error
				got, err = uow.FindOverlapping(ctx, room.ID, tt.start, tt.end, tt.exclude)
				return err
			}))

			ids := make([]int64, 0, len(got))
			for _, bk := range got {
				ids = append(ids, bk.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestUnitOfWork_MissingRows(t *testing.T) {
	db := setupDB(t)
	store := NewStore(db, sql.LevelDefault, time.Second)
	ctx := context.Background()

	err := store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		_, err := uow.LockRoom(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)

		_, err = uow.GetRoom(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)

		_, err = uow.GetBooking(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)

		assert.ErrorIs(t, uow.DeleteBooking(ctx, 404), domain.ErrRecordNotFound)
		assert.ErrorIs(t, uow.UpdateBooking(ctx, &domain.Booking{ID: 404, StartTime: hour(1), EndTime: hour(2)}), domain.ErrRecordNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestRepositories_DuplicatesAndLookups(t *testing.T) {
	db := setupDB(t)
	room, user := seedRoomAndUser(t, db)
	ctx := context.Background()

	err := NewRoomRepository(db).Create(ctx, &domain.Room{Code: room.Code, Name: "dup", Capacity: 1})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	err = NewUserRepository(db).Create(ctx, &domain.User{Email: "bob@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	found, err := NewUserRepository(db).GetByEmail(ctx, " BOB@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, domain.RoleMember, found.Role)

	_, err = NewRoomRepository(db).SetStatus(ctx, 999, domain.RoomMaintenance)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestBookingRepository_Details(t *testing.T) {
	db := setupDB(t)
	room, user := seedRoomAndUser(t, db)
	store := NewStore(db, sql.LevelDefault, time.Second)
	ctx := context.Background()

	b := domain.Booking{Title: "sync", RoomID: room.ID, UserID: user.ID, StartTime: hour(8), EndTime: hour(9), Notes: "agenda"}
	require.NoError(t, store.WithinTx(ctx, func(uow domain.UnitOfWork) error {
		return uow.CreateBooking(ctx, &b)
	}))

	row, err := NewBookingRepository(db).GetWithDetails(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cube", row.RoomName)
	assert.Equal(t, "C-1", row.RoomCode)
	assert.Equal(t, "bob@example.com", row.UserEmail)
	require.NotNil(t, row.Notes)
	assert.Equal(t, "agenda", *row.Notes)
	assert.True(t, row.StartTime.Equal(hour(8)))

	_, err = NewBookingRepository(db).GetWithDetails(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

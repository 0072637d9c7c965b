package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"roombooking/internal/database"
	"roombooking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store runs units of work against the database. Each unit of work is one
// transaction; the room row lock taken by LockRoom orders concurrent
// writers for the same room.
type Store struct {
	db        *gorm.DB
	dialect   string
	isolation sql.IsolationLevel
	txTimeout time.Duration
}

func NewStore(db *gorm.DB, isolation sql.IsolationLevel, txTimeout time.Duration) *Store {
	return &Store{
		db:        db,
		dialect:   database.Dialect(db),
		isolation: isolation,
		txTimeout: txTimeout,
	}
}

// ParseIsolation maps a config value onto a database/sql isolation level.
func ParseIsolation(s string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return sql.LevelDefault, nil
	case "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unknown isolation level %q", s)
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	run := func(tx *gorm.DB) error {
		return fn(&unitOfWork{db: tx, dialect: s.dialect})
	}

	// SQLite is serialisable by construction and the driver rejects
	// explicit isolation levels.
	if s.isolation == sql.LevelDefault || s.dialect != database.DialectPostgres {
		return s.db.WithContext(ctx).Transaction(run)
	}
	return s.db.WithContext(ctx).Transaction(run, &sql.TxOptions{Isolation: s.isolation})
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type unitOfWork struct {
	db      *gorm.DB
	dialect string
}

func (u *unitOfWork) LockRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	q := u.db.WithContext(ctx)
	if u.dialect == database.DialectPostgres {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var room domain.Room
	if err := q.Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (u *unitOfWork) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room domain.Room
	if err := u.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (u *unitOfWork) SetRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	return u.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (u *unitOfWork) FindOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]domain.Booking, error) {
	return findOverlapping(ctx, u.db, roomID, start, end, excludeID)
}

func (u *unitOfWork) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := u.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

func (u *unitOfWork) CreateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := u.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	*b = *toDomainBooking(m)
	return nil
}

// UpdateBooking writes title, notes and interval. room_id is never touched.
func (u *unitOfWork) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	now := time.Now().UTC()
	tx := u.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"title":      m.Title,
			"notes":      m.Notes,
			"start_time": m.StartTime,
			"end_time":   m.EndTime,
			"updated_at": now,
		})
	if tx.Error != nil {
		return fmt.Errorf("update booking: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	b.UpdatedAt = now
	return nil
}

func (u *unitOfWork) DeleteBooking(ctx context.Context, id int64) error {
	tx := u.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return fmt.Errorf("delete booking: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

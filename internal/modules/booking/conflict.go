package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"roombooking/internal/domain"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ConflictChecker finds the bookings a requested interval would collide with.
// It reads through whatever transaction the reader belongs to and never writes.
type ConflictChecker struct{}

func NewConflictChecker() *ConflictChecker {
	return &ConflictChecker{}
}

// FindConflicts returns every booking of roomID overlapping [start, end),
// ordered by start time then id. excludeID, when set, is skipped so that a
// booking never conflicts with itself. The interval must already be valid.
func (c *ConflictChecker) FindConflicts(
	ctx context.Context,
	reader domain.BookingReader,
	roomID int64,
	start, end time.Time,
	excludeID *int64,
) ([]domain.Booking, error) {
	start, end = start.UTC(), end.UTC()

	rows, err := reader.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}

	conflicts := make([]domain.Booking, 0, len(rows))
	for _, b := range rows {
		if b.RoomID != roomID {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !Overlaps(b.StartTime, b.EndTime, start, end) {
			continue
		}
		conflicts = append(conflicts, b)
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if !conflicts[i].StartTime.Equal(conflicts[j].StartTime) {
			return conflicts[i].StartTime.Before(conflicts[j].StartTime)
		}
		return conflicts[i].ID < conflicts[j].ID
	})

	return conflicts, nil
}

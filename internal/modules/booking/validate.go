package booking

import (
	"strings"
	"time"

	"roombooking/internal/pkg/validator"
)

// ValidateCreate checks required fields and interval well-formedness.
// It runs before any transaction is opened.
func ValidateCreate(req CreateBookingRequest) error {
	fields := validator.Validate(req)
	if fields == nil {
		fields = map[string]string{}
	}

	if _, bad := fields["title"]; !bad && strings.TrimSpace(req.Title) == "" {
		fields["title"] = "required"
	}
	if req.UserID <= 0 {
		fields["user_id"] = "required"
	}
	if !req.StartTime.IsZero() && !req.EndTime.IsZero() && !req.StartTime.Before(req.EndTime) {
		fields["end_time"] = "must be after start_time"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateUpdate checks the supplied fields in isolation. The effective
// interval, which mixes supplied and stored values, is checked by the service.
func ValidateUpdate(req UpdateBookingRequest) error {
	fields := validator.Validate(req)
	if fields == nil {
		fields = map[string]string{}
	}

	if req.RoomID != nil {
		fields["room_id"] = "cannot be changed"
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		fields["title"] = "cannot be empty"
	}
	if req.StartTime != nil && req.StartTime.IsZero() {
		fields["start_time"] = "invalid"
	}
	if req.EndTime != nil && req.EndTime.IsZero() {
		fields["end_time"] = "invalid"
	}
	if req.StartTime != nil && req.EndTime != nil && !req.StartTime.Before(*req.EndTime) {
		fields["end_time"] = "must be after start_time"
	}
	if req.Title == nil && req.StartTime == nil && req.EndTime == nil && req.Notes == nil && req.RoomID == nil {
		fields["_"] = "no fields to update"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateInterval is used by the availability check.
func ValidateInterval(roomID int64, start, end time.Time) error {
	fields := map[string]string{}
	if roomID <= 0 {
		fields["room_id"] = "required"
	}
	if start.IsZero() {
		fields["start"] = "required"
	}
	if end.IsZero() {
		fields["end"] = "required"
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		fields["end"] = "must be after start"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

package catalog

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomCodeExists = errors.New("room code already exists")
)

package domain

import "errors"

var (
	// ErrRecordNotFound is returned by stores when a looked-up row does not exist.
	ErrRecordNotFound = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record already exists")
)

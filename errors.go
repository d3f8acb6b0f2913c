package ftracker

import "errors"

var (
	// ErrUnknownActivity is returned when a workout code has no training type.
	ErrUnknownActivity = errors.New("unknown activity")
	// ErrInvalidParameters is returned when sensor data does not fit the training constructor.
	ErrInvalidParameters = errors.New("invalid parameters")
)

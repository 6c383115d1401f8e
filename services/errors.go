package services

import "errors"

// Typed failures surfaced to callers. Transient dependency failures (the
// notifier) are recovered locally and logged, never returned.
var (
	ErrNotFound         = errors.New("not found")
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyCompleted = errors.New("already completed")
)

package domain

import "errors"

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrDayOutOfRange   = errors.New("day is outside the trip date range")
	ErrUnknownActivity = errors.New("activity does not belong to this day")
	ErrIncompleteOrder = errors.New("order must list every activity of the day exactly once")
	ErrLockNotAcquired = errors.New("day is locked by another operation")
)

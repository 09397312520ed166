package ports

import "context"

// Contract for mutual exclusion around read -> compute -> write of one day.
type DayLocker interface {
	// Block until the (trip, day) lock is held or ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, tripID string, day int) (unlock func(), err error)
}

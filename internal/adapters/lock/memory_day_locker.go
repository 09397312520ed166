package lock

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"sync"
)

// MemoryDayLocker serializes work per (trip, day) inside one process.
// Entries are removed once no caller holds or waits for them.
type MemoryDayLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryDayLocker() *MemoryDayLocker {
	return &MemoryDayLocker{slots: make(map[string]*slot)}
}

func dayKey(tripID string, day int) string {
	return fmt.Sprintf("itinerary:lock:%s:%d", tripID, day)
}

func (l *MemoryDayLocker) Lock(ctx context.Context, tripID string, day int) (func(), error) {
	key := dayKey(tripID, day)

	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, s)
		return nil, fmt.Errorf("memory lock %s: %w: %w", key, domain.ErrLockNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(key, s)
		})
	}, nil
}

func (l *MemoryDayLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

package lock

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Deletes the key only if it still holds this owner's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisDayLocker serializes work per (trip, day) across processes with a
// SET NX lease. The TTL bounds how long a crashed holder blocks others.
type RedisDayLocker struct {
	client     redis.UniversalClient
	ttl        time.Duration
	retryDelay time.Duration
}

func NewRedisDayLocker(client redis.UniversalClient, ttl time.Duration) *RedisDayLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisDayLocker{
		client:     client,
		ttl:        ttl,
		retryDelay: 50 * time.Millisecond,
	}
}

// Lock polls with exponential backoff (capped at one second) until the
// lease is acquired or ctx is done.
func (l *RedisDayLocker) Lock(ctx context.Context, tripID string, day int) (_ func(), err error) {
	defer obs.Time(ctx, "lock.redis.Lock")(&err)

	if l.client == nil {
		return nil, errors.New("redis lock: client is nil")
	}

	key := dayKey(tripID, day)
	token := uuid.NewString()
	backoff := l.retryDelay

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("redis lock %s: %w: %w", key, domain.ErrLockNotAcquired, ctx.Err())
			}
			return nil, fmt.Errorf("redis lock %s: setnx: %w", key, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("redis lock %s: %w: %w", key, domain.ErrLockNotAcquired, ctx.Err())
		case <-timer.C:
		}

		backoff *= 2
		if backoff > time.Second {
			backoff = time.Second
		}
	}

	return func() {
		// Release must run even when the request context is already done.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
			log.Printf("req_id=%s redis lock %s release failed: %v", obs.RequestID(ctx), key, err)
		}
	}, nil
}

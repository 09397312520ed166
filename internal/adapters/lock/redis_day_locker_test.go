package lock

import (
	"context"
	"itinerary-planner-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*RedisDayLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	locker := NewRedisDayLocker(client, ttl)
	locker.retryDelay = 5 * time.Millisecond
	return locker, mr
}

func TestRedisDayLockerAcquireRelease(t *testing.T) {
	locker, mr := newRedisLocker(t, time.Minute)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "trip", 3)
	require.NoError(t, err)
	assert.True(t, mr.Exists("itinerary:lock:trip:3"))

	unlock()
	assert.False(t, mr.Exists("itinerary:lock:trip:3"))
}

func TestRedisDayLockerBlocksSecondHolder(t *testing.T) {
	locker, _ := newRedisLocker(t, time.Minute)

	unlock, err := locker.Lock(context.Background(), "trip", 1)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "trip", 1)
	require.ErrorIs(t, err, domain.ErrLockNotAcquired)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisDayLockerWaitsForRelease(t *testing.T) {
	locker, _ := newRedisLocker(t, time.Minute)

	unlock, err := locker.Lock(context.Background(), "trip", 1)
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	unlock2, err := locker.Lock(ctx, "trip", 1)
	require.NoError(t, err)
	unlock2()
}

func TestRedisDayLockerDoesNotReleaseForeignLease(t *testing.T) {
	locker, mr := newRedisLocker(t, time.Second)

	unlock, err := locker.Lock(context.Background(), "trip", 1)
	require.NoError(t, err)

	// The lease expires and another holder takes the key.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("itinerary:lock:trip:1", "someone-else"))

	unlock()

	got, err := mr.Get("itinerary:lock:trip:1")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

// Package redislock implements a non-blocking cooperative lock on Redis.
// Acquire is a single SET NX with a TTL and a random token, Release deletes
// the key only when the token still matches, so an expired lock taken over by
// another owner is never released by the previous one. The TTL is the crash
// backstop: a holder that dies releases the lock by expiry.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrAcquire is returned when the acquire command itself fails.
	ErrAcquire = errors.New("redislock: failed to acquire lock")

	// ErrRelease is returned when the release script fails.
	ErrRelease = errors.New("redislock: failed to release lock")
)

// releaseScript deletes the key only when it is still held by the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker issues cooperative locks backed by a shared Redis instance.
type Locker struct {
	client *redis.Client
}

// New creates a Locker on the given client.
func New(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// Acquire tries to take the lock without blocking. It returns the release
// token and true on success, and false when the lock is held by someone else.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("%w: Acquire - setnx %s: %v", ErrAcquire, key, err)
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// Release frees the lock if it is still held under the given token.
// Releasing an expired or re-acquired lock is a no-op.
func (l *Locker) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: Release - del %s: %v", ErrRelease, key, err)
	}
	return nil
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	ErrLockNotAcquired = errors.New("target lock not acquired")
	ErrLockLost        = errors.New("target lock lost")
)

const (
	lockMinBackoff = 10 * time.Millisecond
	lockMaxBackoff = 200 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lease only while it still holds our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// TargetLock serializes work per key across processes with a SET NX PX lock.
// The lease is renewed every ttl/3 while fn runs, so it only lapses when the
// holder stops renewing. If a renewal finds the lease gone, fn's context is
// cancelled and Do reports ErrLockLost.
// Key format: lock:<key>
type TargetLock struct {
	client  *redis.Client
	ttl     time.Duration
	maxWait time.Duration
	log     zerolog.Logger
}

// NewTargetLock returns a lock whose entries expire after ttl; callers give up
// after maxWait.
func NewTargetLock(client *redis.Client, ttl, maxWait time.Duration, log zerolog.Logger) *TargetLock {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if maxWait <= 0 {
		maxWait = ttl
	}
	return &TargetLock{client: client, ttl: ttl, maxWait: maxWait, log: log}
}

func (l *TargetLock) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	k := fmt.Sprintf("lock:%s", key)
	token := uuid.NewString()

	if err := l.acquire(ctx, k, token); err != nil {
		return err
	}
	defer l.release(ctx, k, token)

	fnCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	done := make(chan struct{})
	watchdogDone := make(chan struct{})
	go func() {
		defer close(watchdogDone)
		l.keepAlive(fnCtx, k, token, done, cancel)
	}()

	err := fn(fnCtx)
	close(done)
	<-watchdogDone

	if cause := context.Cause(fnCtx); errors.Is(cause, ErrLockLost) {
		return fmt.Errorf("%w: %s", ErrLockLost, key)
	}
	return err
}

// keepAlive extends the lease until done is closed. A lease that can no
// longer be extended cancels the holder.
func (l *TargetLock) keepAlive(ctx context.Context, key, token string, done <-chan struct{}, cancel context.CancelCauseFunc) {
	interval := l.ttl / 3
	t := time.NewTicker(interval)
	defer t.Stop()

	lastRenewed := time.Now()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-t.C:
		}

		renewCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), interval)
		n, err := renewScript.Run(renewCtx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
		stop()

		switch {
		case err == nil && n == 1:
			lastRenewed = time.Now()
		case err == nil:
			l.log.Warn().Str("key", key).Msg("target lock taken over, cancelling holder")
			cancel(ErrLockLost)
			return
		case time.Since(lastRenewed) >= l.ttl:
			l.log.Warn().Err(err).Str("key", key).Msg("target lock lease expired, cancelling holder")
			cancel(ErrLockLost)
			return
		default:
			l.log.Warn().Err(err).Str("key", key).Msg("failed to renew target lock")
		}
	}
}

func (l *TargetLock) acquire(ctx context.Context, key, token string) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	backoff := lockMinBackoff
	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if ok {
			return nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, lockMaxBackoff)
	}
}

func (l *TargetLock) release(ctx context.Context, key, token string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
	defer cancel()

	if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("failed to release target lock")
	}
}

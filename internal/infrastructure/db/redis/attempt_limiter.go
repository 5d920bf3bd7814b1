package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter counts attempts per key in a fixed window that starts with
// the first attempt.
// Key format: <prefix>:<key>
type AttemptLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

func NewAttemptLimiter(client *redis.Client, prefix string, max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{client: client, prefix: prefix, max: max, window: window}
}

func (l *AttemptLimiter) Register(ctx context.Context, key string) (bool, error) {
	k := l.key(key)
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("register attempt: %w", err)
	}
	return incr.Val() <= int64(l.max), nil
}

func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *AttemptLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s", l.prefix, key)
}

package ports

import "context"

// AttemptLimiter counts attempts per key inside a fixed window.
type AttemptLimiter interface {
	// Register records one attempt and reports whether it is still within
	// the limit.
	Register(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// Serializer runs fn with exclusive access to key. Calls for the same key
// never overlap; calls for different keys may run concurrently.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

package repository

import (
	"context"
	"time"
)

// BucketStore tracks per-client request budgets for rate limiting.
type BucketStore interface {
	// Take consumes one token from key's bucket. It reports false when the
	// bucket is empty for the current window.
	Take(ctx context.Context, key string, capacity int, window time.Duration) (bool, error)
}

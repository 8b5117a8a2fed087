package http

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"stress-advisor/observability"
	"stress-advisor/repository"
)

// RateLimiter gives each client capacity requests per window.
type RateLimiter struct {
	store    repository.BucketStore
	capacity int
	window   time.Duration
	metrics  *observability.Metrics
	log      logrus.FieldLogger
}

func NewRateLimiter(
	store repository.BucketStore,
	capacity int,
	window time.Duration,
	metrics *observability.Metrics,
	log logrus.FieldLogger,
) *RateLimiter {
	return &RateLimiter{
		store:    store,
		capacity: capacity,
		window:   window,
		metrics:  metrics,
		log:      log,
	}
}

// Allow consumes one request for client. Store failures let the request
// through.
func (r *RateLimiter) Allow(ctx context.Context, client string) bool {
	ok, err := r.store.Take(ctx, client, r.capacity, r.window)
	if err != nil {
		r.log.WithError(err).WithField("client", client).Warn("rate limit store unavailable")
		return true
	}
	if !ok && r.metrics != nil {
		r.metrics.IncRateLimited()
	}
	return ok
}

package repository

import (
	"context"
	"sync"
	"time"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryBucketStore keeps buckets in process memory. Buckets idle for longer
// than an hour are dropped by a background loop until Stop is called.
type MemoryBucketStore struct {
	mu          sync.Mutex
	clients     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewMemoryBucketStore() *MemoryBucketStore {
	s := &MemoryBucketStore{
		clients:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryBucketStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryBucketStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, bucket := range s.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(s.clients, key)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (s *MemoryBucketStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
}

func (s *MemoryBucketStore) Take(_ context.Context, key string, capacity int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	bucket, exists := s.clients[key]

	if !exists {
		if capacity <= 0 {
			return false, nil
		}
		s.clients[key] = &clientBucket{
			tokens:     capacity - 1,
			lastRefill: now,
		}
		return true, nil
	}

	if now.Sub(bucket.lastRefill) >= window {
		bucket.tokens = capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false, nil
	}

	bucket.tokens--
	return true, nil
}

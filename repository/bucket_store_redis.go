package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "stress-advisor:ratelimit:"

// takeScript counts one request and arms the window expiry in the same step.
// A counter left without a TTL gets one on its next request.
var takeScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisBucketStore shares fixed-window counters between server replicas.
type RedisBucketStore struct {
	client *redis.Client
}

func NewRedisBucketStore(addr string) *RedisBucketStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisBucketStore{client: rdb}
}

// Ping checks that the Redis server is reachable.
func (r *RedisBucketStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisBucketStore) Take(ctx context.Context, key string, capacity int, window time.Duration) (bool, error) {
	redisKey := redisKeyPrefix + key

	count, err := takeScript.Run(ctx, r.client, []string{redisKey}, window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis rate limit for %s: %w", key, err)
	}

	return count <= int64(capacity), nil
}

func (r *RedisBucketStore) Close() error {
	return r.client.Close()
}

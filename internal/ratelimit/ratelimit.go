// README: Fixed-window rate limiter on shared Redis counters.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Limiter counts requests per key in fixed windows. The counter lives in
// Redis so every process shares the same window; the key's TTL is the window
// boundary, so the count resets when the window passes.
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{redis: client, limit: limit, window: window}
}

// Allow increments the key's window counter and compares it to the ceiling.
// The first increment of a window sets the expiry; later increments leave it,
// so the window is anchored at the first request.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	full := keyPrefix + key
	n, err := l.redis.Incr(ctx, full).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := l.redis.Expire(ctx, full, l.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(l.limit), nil
}

// Key builds the composite counter key for a caller and route.
func Key(callerID, route string) string {
	return fmt.Sprintf("%s:%s", callerID, route)
}

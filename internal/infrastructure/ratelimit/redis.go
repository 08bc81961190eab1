package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultPerMinute = 5

// FixedWindow allows at most max hits per key per window. INCR and TTL run in
// one transaction; a counter without an expiry gets one, so a failed EXPIRE
// cannot pin a key forever.
type FixedWindow struct {
	cache  *redis.Client
	max    int64
	window time.Duration
	prefix string
}

func NewFixedWindow(cache *redis.Client, maxPerMin int) *FixedWindow {
	if maxPerMin <= 0 {
		maxPerMin = DefaultPerMinute
	}
	return &FixedWindow{
		cache:  cache,
		max:    int64(maxPerMin),
		window: time.Minute,
		prefix: "rl:",
	}
}

func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	key = l.prefix + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	if _, err := l.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	}); err != nil {
		return false, err
	}

	// -1: key exists without an expiry
	if ttl.Val() == -1 {
		if err := l.cache.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}

	return incr.Val() <= l.max, nil
}

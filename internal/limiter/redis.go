package limiter

import (
	"context"
	"fmt"
	"time"
)

const minuteKey = "transcripts:rpm:"

// Counter is the part of the Redis service the limiter needs
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Redis counts fetches in one-minute windows shared by every instance
type Redis struct {
	counter Counter
	rpm     int64
	now     func() time.Time
}

func NewRedis(counter Counter, rpm int64) *Redis {
	return &Redis{counter: counter, rpm: rpm, now: time.Now}
}

func (r *Redis) Acquire(ctx context.Context) error {

	key := minuteKey + r.now().UTC().Format("2006-01-02-15-04")

	// Slightly over a minute, the key is never read after its window
	count, err := r.counter.IncrWithTTL(ctx, key, 65*time.Second)
	if err != nil {
		return fmt.Errorf("redis failure: %w", err)
	}

	if count > r.rpm {
		return ErrLimitReached
	}

	return nil
}

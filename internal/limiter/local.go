package limiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Local is an in-process token bucket, refilled evenly across the minute
type Local struct {
	limiter *rate.Limiter
}

// NewLocal allows up to rpm fetches per minute, all of them in a burst
func NewLocal(rpm int64) *Local {
	every := rate.Every(time.Minute / time.Duration(rpm))
	return &Local{limiter: rate.NewLimiter(every, int(rpm))}
}

func (l *Local) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !l.limiter.Allow() {
		return ErrLimitReached
	}
	return nil
}

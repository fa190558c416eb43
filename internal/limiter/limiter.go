// Package limiter caps how often the gateway calls YouTube,
// so a burst of clients does not get the server's IP blocked.
package limiter

import (
	"context"
	"errors"
)

var ErrLimitReached = errors.New("fetch limit reached")

type Limiter interface {
	// Acquire consumes one fetch from the quota.
	// Returns ErrLimitReached when the quota is exhausted.
	Acquire(ctx context.Context) error
}

// Unlimited never refuses a fetch
type Unlimited struct{}

func (Unlimited) Acquire(context.Context) error { return nil }

// New picks the limiter for the configured fetches per minute.
// A zero rpm disables limiting, a nil counter keeps the quota in process.
func New(rpm int64, counter Counter) Limiter {
	switch {
	case rpm <= 0:
		return Unlimited{}
	case counter == nil:
		return NewLocal(rpm)
	default:
		return NewRedis(counter, rpm)
	}
}

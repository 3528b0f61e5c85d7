package risk

import (
	"context"
	"fmt"
	"pen/pkg/logger"
	"pen/pkg/urlscanner"
	"sync"
	"time"

	"go.uber.org/zap"
)

// limiter shares the provider's submission budget between concurrent
// evaluations. A submission may start while the last reported Remaining,
// minus the submissions in flight, stays positive. Once ResetAt has passed
// the whole Limit is available again.
//
// Until the provider has answered once, a single probe submission is let
// through to learn the real budget.
type limiter struct {
	mu       sync.Mutex
	inFlight int
	status   *urlscanner.RateLimitStatus
	// wake is signalled, without blocking, whenever a submission finishes.
	wake chan struct{}
}

func newLimiter() *limiter {
	return &limiter{wake: make(chan struct{})}
}

// reserve blocks until a submission slot is available or ctx is done.
func (l *limiter) reserve(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.status == nil {
			l.status = &urlscanner.RateLimitStatus{
				Limit:     1,
				Remaining: 1,
				ResetAt:   time.Now().Add(365 * 24 * time.Hour),
			}
		}

		remaining := l.status.Remaining
		if time.Now().After(l.status.ResetAt) {
			remaining = l.status.Limit
		}
		if remaining-l.inFlight > 0 {
			l.inFlight++
			l.mu.Unlock()

			return nil
		}

		resetAt := l.status.ResetAt
		inFlight := l.inFlight
		l.mu.Unlock()

		logger.Debug(ctx, "waiting for reputation service budget",
			zap.Int("remaining", remaining),
			zap.Int("inFlight", inFlight),
			zap.Time("resetAt", resetAt))

		timer := time.NewTimer(time.Until(resetAt))
		select {
		case <-ctx.Done():
			timer.Stop()

			return fmt.Errorf("timeout waiting for reputation service budget: %w", ctx.Err())
		case <-l.wake:
		case <-timer.C:
		}
		timer.Stop()
	}
}

// release returns a slot and merges the budget reported by the provider.
// A new window is always adopted. Within the same window only a lower
// Remaining replaces the known one, since concurrent answers may arrive out
// of order.
func (l *limiter) release(status urlscanner.RateLimitStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inFlight > 0 {
		l.inFlight--
	}

	select {
	case l.wake <- struct{}{}:
	default:
	}

	switch {
	case status.ResetAt.IsZero():
	case l.status == nil, !l.status.ResetAt.Equal(status.ResetAt):
		l.status = &status
	case status.Remaining < l.status.Remaining:
		l.status = &status
	}
}

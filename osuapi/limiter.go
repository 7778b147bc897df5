package osuapi

import (
	"context"
	"sync"
	"time"
)

// Limiter bounds both the request rate over a sliding window and the number
// of requests in flight at once.
type Limiter struct {
	window time.Duration
	rate   int

	mu       sync.Mutex
	attempts []time.Time

	inflight chan struct{}
}

// NewLimiter allows rate requests per window, with at most concurrent
// requests in flight.
func NewLimiter(rate int, window time.Duration, concurrent int) *Limiter {
	l := &Limiter{
		window:   window,
		rate:     rate,
		inflight: make(chan struct{}, concurrent),
	}
	for i := 0; i < concurrent; i++ {
		l.inflight <- struct{}{}
	}
	return l
}

// Wait blocks until a request may start. Every successful Wait must be paired
// with a Done.
func (l *Limiter) Wait(ctx context.Context) error {
	select {
	case <-l.inflight:
	case <-ctx.Done():
		return ctx.Err()
	}

	for {
		l.mu.Lock()
		now := time.Now()
		for len(l.attempts) > 0 && now.Sub(l.attempts[0]) > l.window {
			l.attempts = l.attempts[1:]
		}
		if len(l.attempts) < l.rate {
			l.attempts = append(l.attempts, now)
			l.mu.Unlock()
			return nil
		}
		wait := l.window - now.Sub(l.attempts[0])
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			l.inflight <- struct{}{}
			return ctx.Err()
		}
	}
}

// Done releases the in-flight slot taken by Wait.
func (l *Limiter) Done() {
	l.inflight <- struct{}{}
}

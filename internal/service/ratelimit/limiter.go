package ratelimit

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	xhttp "TradeLens/pkg/http"

	"github.com/labstack/echo/v4"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter is a per-key token bucket. Every key refills at rate tokens per
// second up to burst.
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*bucket
	rate  float64
	burst float64
	now   func() time.Time
}

func New(rate float64, burst int) *Limiter {
	return &Limiter{
		m:     make(map[string]*bucket),
		rate:  rate,
		burst: float64(burst),
		now:   time.Now,
	}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	ok, _ := l.take(key)
	return ok
}

// take consumes a token and, when none is left, reports how long until one is.
func (l *Limiter) take(key string) (bool, time.Duration) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.m[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed*l.rate)
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if l.rate <= 0 {
		return false, time.Minute
	}
	wait := time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
	return false, wait
}

// Sweep drops buckets untouched for longer than idle. A dropped bucket
// would have refilled to burst anyway.
func (l *Limiter) Sweep(idle time.Duration) int {
	cutoff := l.now().Add(-idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, b := range l.m {
		if b.last.Before(cutoff) {
			delete(l.m, k)
			n++
		}
	}
	return n
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

// Run sweeps idle buckets every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep(interval)
		}
	}
}

// Middleware limits requests per client IP. The websocket upgrade and the
// metrics scrape are exempt.
func (l *Limiter) Middleware(skip ...string) echo.MiddlewareFunc {
	exempt := make(map[string]bool, len(skip))
	for _, p := range skip {
		exempt[p] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if exempt[c.Path()] {
				return next(c)
			}
			ok, wait := l.take(c.RealIP())
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return xhttp.TooManyRequestsError("rate limit exceeded")
			}
			return next(c)
		}
	}
}

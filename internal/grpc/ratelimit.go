package grpcserver

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/internal/auth"
)

// minIdle is the shortest time a caller's bucket is kept after its last request.
const minIdle = 10 * time.Minute

// rateLimiter keeps one token bucket per authenticated caller. Buckets idle for longer
// than idle are dropped on a periodic sweep; by then they have refilled, so a fresh
// bucket grants the same budget.
type rateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	limiters  map[string]*callerLimiter
}

type callerLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter returns a limiter allowing rps requests per second per caller.
// rps <= 0 disables limiting.
func newRateLimiter(rps float64, burst int) *rateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	idle := minIdle
	if limit != rate.Inf {
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &rateLimiter{
		limit:    limit,
		burst:    burst,
		idle:     idle,
		now:      time.Now,
		limiters: make(map[string]*callerLimiter),
	}
}

func (l *rateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	c, ok := l.limiters[key]
	if !ok {
		c = &callerLimiter{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = c
	}
	c.lastSeen = now
	return c.lim
}

// sweep drops buckets not used within the idle window. Callers hold l.mu.
func (l *rateLimiter) sweep(now time.Time) {
	for k, c := range l.limiters {
		if now.Sub(c.lastSeen) >= l.idle {
			delete(l.limiters, k)
		}
	}
	l.lastSweep = now
}

// Unary rejects calls beyond the caller's budget with ResourceExhausted. Methods in skip
// are never limited.
func (l *rateLimiter) Unary(skip ...string) grpc.UnaryServerInterceptor {
	skipped := make(map[string]struct{}, len(skip))
	for _, m := range skip {
		skipped[m] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := skipped[info.FullMethod]; ok || l.limit == rate.Inf {
			return handler(ctx, req)
		}
		key := "anonymous"
		if p, ok := auth.FromContext(ctx); ok && p != nil {
			key = p.Kind + ":" + p.Name
		}
		if !l.get(key).Allow() {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", key)
		}
		return handler(ctx, req)
	}
}

package types

import (
	"context"
	"time"
)

// Validator is implemented by entities to self-validate.
type Validator interface {
	Validate() error
}

// RateLimitInfo contains the current state of a rate limit.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter provides per-client request rate limiting.
type RateLimiter interface {
	// Allow checks whether the client may make another request this window.
	// Implementations are expected to fail open: an infrastructure error
	// returns allowed=true alongside the error so callers can log it.
	Allow(ctx context.Context, clientID string, limit int) (RateLimitInfo, bool, error)
}

// MetricsCollector records operational metrics. The CloudWatch implementation
// lives in internal/telemetry; tests use an in-memory fake.
type MetricsCollector interface {
	Count(ctx context.Context, name string, value float64, dims map[string]string)
	Timing(ctx context.Context, name string, d time.Duration, dims map[string]string)
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// Logger defines the structured logging interface used throughout the service.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}

package core

import (
	"context"
	"time"

	"golfphysics/internal/types"
)

// Authenticator decouples the HTTP layer from the API key lookup mechanism
// (DB lookups), allowing for easy mocking in tests.
type Authenticator interface {
	// ResolveKey verifies a presented API key and returns the Actor it
	// belongs to.
	//
	// Resolution Strategy:
	// 1. Hash the presented key (SHA-256 hex) and look it up in api_clients.
	// 2. If the row exists but is revoked or inactive, return ErrCodeAuthKeyRevoked.
	// 3. Otherwise populate the Actor with the client ID and plan tier.
	//
	// Return ErrCodeAuthKeyInvalid if the key is malformed or not found.
	ResolveKey(ctx context.Context, key string) (*types.Actor, error)
}

// AdminVerifier checks operator credentials for the admin endpoints.
type AdminVerifier interface {
	// VerifyAdminKey reports whether the presented key matches the stored
	// admin credential. Implementations must be constant-time.
	VerifyAdminKey(key string) bool
}

// RateLimitStore abstracts the backing store for rate limiting.
// Production uses Redis fixed windows; dev/test uses in-memory.
type RateLimitStore interface {
	// IncrementAndCheck atomically increments the client's counter for the
	// current one-minute window and checks it against the limit.
	// A limit of 0 or less means unlimited.
	IncrementAndCheck(ctx context.Context, clientID string, limit int) (RateLimitResult, error)
}

// RateLimitResult contains the outcome of a rate limit check.
type RateLimitResult struct {
	// Allowed indicates whether the request is within the rate limit.
	Allowed bool
	// Remaining is the number of requests remaining in the current window.
	Remaining int
	// ResetAt is the time when the current rate limit window resets.
	ResetAt time.Time
}

// LimitResolver maps a plan tier to its per-minute request limit.
// A return value of 0 or less means unlimited.
type LimitResolver func(tier types.PlanTier) int

// UsageRecorder tracks per-client request usage for analytics, billing, and
// daily quota enforcement. Track must never fail the request; errors are
// logged and dropped.
type UsageRecorder interface {
	Track(ctx context.Context, clientID, endpoint, method string, statusCode int, latency time.Duration)

	// DailyQuotaExceeded reports whether the client has used up its per-day
	// request allowance. A limit of 0 or less means unlimited.
	// Implementations log store failures and return them so callers can
	// fail open.
	DailyQuotaExceeded(ctx context.Context, clientID string, dailyLimit int) (bool, error)
}

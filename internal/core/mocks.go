package core

import (
	"context"
	"sync"
	"time"

	"golfphysics/internal/types"
)

// --- MockAuthenticator ---

// MockAuthenticator implements the Authenticator interface for testing.
// It allows injecting a predefined Actor for a given key, or returning
// a fixed error to simulate authentication failures.
//
// Usage:
//
//	mock := &MockAuthenticator{
//	    Actor: &types.Actor{
//	        ID:   "client_test123",
//	        Type: types.ActorTypeAPIClient,
//	        Tier: types.TierDeveloper,
//	    },
//	}
//	actor, err := mock.ResolveKey(ctx, "gp_live_abc123")
//
// To simulate an error:
//
//	mock := &MockAuthenticator{
//	    Err: types.NewAppError(types.ErrCodeAuthKeyInvalid, "invalid key", nil),
//	}
type MockAuthenticator struct {
	// Actor is the predefined Actor returned on successful key resolution.
	// If nil and Err is also nil, ResolveKey returns (nil, nil).
	Actor *types.Actor

	// Err is the error returned by ResolveKey. When set, Actor is ignored.
	Err error

	// ResolveKeyFunc is an optional function that overrides the default
	// behavior. When set, it takes precedence over Actor and Err fields.
	// This allows tests to implement dynamic behavior based on the key value.
	ResolveKeyFunc func(ctx context.Context, key string) (*types.Actor, error)

	// mu protects Calls for concurrent access.
	mu sync.Mutex

	// Calls records every key passed to ResolveKey for assertion purposes.
	Calls []string
}

// ResolveKey implements the Authenticator interface.
// It records the call, then delegates to ResolveKeyFunc if set,
// otherwise returns Err (if set) or Actor.
func (m *MockAuthenticator) ResolveKey(ctx context.Context, key string) (*types.Actor, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, key)
	m.mu.Unlock()

	if m.ResolveKeyFunc != nil {
		return m.ResolveKeyFunc(ctx, key)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Actor, nil
}

// --- StaticAdminVerifier ---

// StaticAdminVerifier implements AdminVerifier against a fixed plaintext key.
// Only for tests and local development; production uses the bcrypt verifier.
type StaticAdminVerifier struct {
	Key string
}

// VerifyAdminKey reports whether the presented key matches, in constant time.
func (v *StaticAdminVerifier) VerifyAdminKey(key string) bool {
	return constantTimeEqual(key, v.Key)
}

// --- MockRateLimitStore ---

// MockRateLimitStore implements the RateLimitStore interface for testing.
// It allows injecting a predefined result or error to simulate rate limiting.
//
// Usage:
//
//	mock := &MockRateLimitStore{
//	    Result: RateLimitResult{Allowed: true, Remaining: 59, ResetAt: time.Now().Add(time.Minute)},
//	}
//
// To simulate rate limit exceeded:
//
//	mock := &MockRateLimitStore{
//	    Result: RateLimitResult{Allowed: false, Remaining: 0, ResetAt: time.Now().Add(30 * time.Second)},
//	}
type MockRateLimitStore struct {
	// Result is the predefined RateLimitResult returned by IncrementAndCheck.
	Result RateLimitResult

	// Err is the error returned by IncrementAndCheck. When set, Result is
	// still returned alongside the error.
	Err error

	// IncrementAndCheckFunc is an optional function that overrides the default
	// behavior. When set, it takes precedence over Result and Err fields.
	IncrementAndCheckFunc func(ctx context.Context, clientID string, limit int) (RateLimitResult, error)

	// mu protects Calls for concurrent access.
	mu sync.Mutex

	// Calls records every invocation for assertion purposes.
	Calls []RateLimitCall
}

// RateLimitCall records the arguments of a single IncrementAndCheck invocation.
type RateLimitCall struct {
	ClientID string
	Limit    int
}

// IncrementAndCheck implements the RateLimitStore interface.
// It records the call, then delegates to IncrementAndCheckFunc if set,
// otherwise returns Result and Err.
func (m *MockRateLimitStore) IncrementAndCheck(ctx context.Context, clientID string, limit int) (RateLimitResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, RateLimitCall{ClientID: clientID, Limit: limit})
	m.mu.Unlock()

	if m.IncrementAndCheckFunc != nil {
		return m.IncrementAndCheckFunc(ctx, clientID, limit)
	}
	return m.Result, m.Err
}

// --- MockUsageRecorder ---

// MockUsageRecorder implements UsageRecorder and records all Track and
// DailyQuotaExceeded calls for assertion purposes.
type MockUsageRecorder struct {
	// QuotaExceeded and QuotaErr configure DailyQuotaExceeded's return
	// values.
	QuotaExceeded bool
	QuotaErr      error

	mu         sync.Mutex
	Calls      []UsageCall
	QuotaCalls []QuotaCall
}

// UsageCall records the arguments of a single Track invocation.
type UsageCall struct {
	ClientID   string
	Endpoint   string
	Method     string
	StatusCode int
	Latency    time.Duration
}

// QuotaCall records the arguments of a single DailyQuotaExceeded invocation.
type QuotaCall struct {
	ClientID string
	Limit    int
}

// Track implements the UsageRecorder interface.
func (m *MockUsageRecorder) Track(_ context.Context, clientID, endpoint, method string, statusCode int, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, UsageCall{
		ClientID:   clientID,
		Endpoint:   endpoint,
		Method:     method,
		StatusCode: statusCode,
		Latency:    latency,
	})
}

// DailyQuotaExceeded implements the UsageRecorder interface.
func (m *MockUsageRecorder) DailyQuotaExceeded(_ context.Context, clientID string, dailyLimit int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuotaCalls = append(m.QuotaCalls, QuotaCall{ClientID: clientID, Limit: dailyLimit})
	return m.QuotaExceeded, m.QuotaErr
}

// --- MockMetricsCollector ---

// MockMetricsCollector implements MetricsCollector and records all
// RecordRequest calls for assertion purposes.
type MockMetricsCollector struct {
	mu    sync.Mutex
	Calls []MetricsCall
}

// MetricsCall records the arguments of a single RecordRequest invocation.
type MetricsCall struct {
	Method   string
	Endpoint string
	Status   string
	Duration time.Duration
}

// RecordRequest implements the MetricsCollector interface.
func (m *MockMetricsCollector) RecordRequest(method, endpoint, status string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MetricsCall{
		Method:   method,
		Endpoint: endpoint,
		Status:   status,
		Duration: duration,
	})
}

// Compile-time interface assertions.
var (
	_ Authenticator    = (*MockAuthenticator)(nil)
	_ AdminVerifier    = (*StaticAdminVerifier)(nil)
	_ RateLimitStore   = (*MockRateLimitStore)(nil)
	_ UsageRecorder    = (*MockUsageRecorder)(nil)
	_ MetricsCollector = (*MockMetricsCollector)(nil)
)

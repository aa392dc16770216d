// Package ratelimit implements the per-client fixed-window rate limiter
// backing the API's plan limits. Counters live in Redis keyed by client and
// minute so every API instance shares the same window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"golfphysics/internal/config"
	"golfphysics/internal/core"
	"golfphysics/internal/types"
)

// windowSize is the fixed rate limit window. Plan limits are expressed per
// minute, so the window matches.
const windowSize = time.Minute

// counterTTL keeps expired window keys around briefly for debugging before
// Redis reclaims them.
const counterTTL = 2 * time.Minute

// redisClient is the slice of the go-redis API the store uses. *redis.Client
// satisfies it; tests substitute a fake.
type redisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Store implements core.RateLimitStore on Redis fixed windows.
type Store struct {
	rdb   redisClient
	clock types.Clock
}

// NewStore creates a rate limit store from the Redis configuration.
// Returns (nil, nil) when no Redis address is configured; the caller leaves
// the server's store nil and rate limiting is disabled (fail open).
func NewStore(cfg config.RedisConfig) (*Store, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password.Unmask(),
		DB:       cfg.DB,
	})

	return &Store{
		rdb:   rdb,
		clock: types.RealClock{},
	}, nil
}

// newStoreWithClient wires an explicit client and clock, for tests.
func newStoreWithClient(rdb redisClient, clock types.Clock) *Store {
	if clock == nil {
		clock = types.RealClock{}
	}
	return &Store{rdb: rdb, clock: clock}
}

// IncrementAndCheck atomically increments the client's counter for the
// current one-minute window and checks it against the limit. Returned errors
// mean the store is unreachable; the middleware treats that as allow.
func (s *Store) IncrementAndCheck(ctx context.Context, clientID string, limit int) (core.RateLimitResult, error) {
	now := s.clock.Now()
	windowStart := now.Truncate(windowSize)
	key := counterKey(clientID, windowStart)

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return core.RateLimitResult{}, fmt.Errorf("increment rate limit counter: %w", err)
	}

	// Set the TTL on first touch of the window. A lost EXPIRE on a later
	// request is harmless because the first one already set it.
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, counterTTL).Err(); err != nil {
			return core.RateLimitResult{}, fmt.Errorf("set rate limit counter expiry: %w", err)
		}
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return core.RateLimitResult{
		Allowed:   count <= int64(limit),
		Remaining: remaining,
		ResetAt:   windowStart.Add(windowSize),
	}, nil
}

// counterKey builds the per-client, per-window Redis key.
func counterKey(clientID string, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", clientID, windowStart.Unix())
}

// Probe adapts the store to the health check interface.
type Probe struct {
	Store *Store
}

// Name identifies the probe in health check responses.
func (p *Probe) Name() string { return "redis" }

// Check pings Redis within the caller's deadline.
func (p *Probe) Check(ctx context.Context) error {
	return p.Store.rdb.Ping(ctx).Err()
}

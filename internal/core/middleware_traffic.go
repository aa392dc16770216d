package core

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golfphysics/internal/types"
)

// defaultRateLimitMax is the fallback per-minute limit used when no
// LimitResolver is configured. Matches the developer tier.
const defaultRateLimitMax = 60

// RateLimit enforces the per-minute plan limit for the authenticated client.
//
// The middleware extracts the Actor from the request context (set by
// AuthMiddleware), resolves the client's per-minute limit from its plan tier,
// and calls RateLimitStore.IncrementAndCheck to atomically increment the
// fixed-window counter and check it against the limit.
//
// If no RateLimitStore is configured (e.g., during tests), the middleware
// passes through without rate limiting. If no Actor is in the context
// (public path or unauthenticated request), the middleware passes through.
//
// On every counted request (allowed or not), the middleware sets standard
// rate limit response headers:
//   - X-RateLimit-Limit: The maximum number of requests in the window.
//   - X-RateLimit-Remaining: The number of requests remaining.
//   - X-RateLimit-Reset: Unix timestamp when the window resets.
//
// When rate limited, the middleware also sets:
//   - Retry-After: Seconds until the rate limit window resets.
//
// Store errors fail open: a Redis outage must never take the API down with it.
func (s *Server) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.RateLimitStore == nil {
			next.ServeHTTP(w, r)
			return
		}

		actor, ok := types.GetActor(r.Context())
		if !ok || actor.Type != types.ActorTypeAPIClient {
			next.ServeHTTP(w, r)
			return
		}

		limit := defaultRateLimitMax
		if s.LimitForTier != nil {
			limit = s.LimitForTier(actor.Tier)
		}
		if limit <= 0 {
			// Unlimited plan; skip counting entirely.
			next.ServeHTTP(w, r)
			return
		}

		result, err := s.RateLimitStore.IncrementAndCheck(r.Context(), actor.ID, limit)
		if err != nil {
			// Fail open: allow the request through but log the error. This
			// prevents a rate limit store outage from blocking all traffic.
			s.Logger.Error("rate limit store error",
				slog.String("client_id", actor.ID),
				slog.String("error", err.Error()),
			)
			next.ServeHTTP(w, r)
			return
		}

		setRateLimitHeaders(w, limit, result)

		if !result.Allowed {
			s.Logger.Warn("rate limit exceeded",
				slog.String("client_id", actor.ID),
				slog.String("tier", string(actor.Tier)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

			requestID := types.GetRequestID(r.Context())
			resp := APIErrorResponse{
				Error: ErrorDetail{
					Code:      string(types.ErrCodeRateLimit),
					Message:   "Rate limit exceeded. Please retry after the reset time.",
					RequestID: requestID,
				},
			}
			JSON(w, r, http.StatusTooManyRequests, resp)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// DailyQuota enforces the per-day plan allowance for the authenticated
// client. It runs after RateLimit so the cheap fixed-window check in Redis
// rejects bursts before the database count is consulted.
//
// Passes through when no UsageRecorder or daily limit resolver is
// configured, when there is no API client actor in the context, or when the
// resolved limit is 0 (unlimited). Store errors fail open, same as the
// per-minute limiter.
func (s *Server) DailyQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Usage == nil || s.DailyLimitForTier == nil {
			next.ServeHTTP(w, r)
			return
		}

		actor, ok := types.GetActor(r.Context())
		if !ok || actor.Type != types.ActorTypeAPIClient {
			next.ServeHTTP(w, r)
			return
		}

		limit := s.DailyLimitForTier(actor.Tier)
		if limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		exceeded, err := s.Usage.DailyQuotaExceeded(r.Context(), actor.ID, limit)
		if err != nil {
			// The recorder has already logged the store failure.
			next.ServeHTTP(w, r)
			return
		}

		if exceeded {
			s.Logger.Warn("daily quota exceeded",
				slog.String("client_id", actor.ID),
				slog.String("tier", string(actor.Tier)),
				slog.Int("limit", limit),
				slog.String("path", r.URL.Path),
			)

			requestID := types.GetRequestID(r.Context())
			resp := APIErrorResponse{
				Error: ErrorDetail{
					Code:      string(types.ErrCodeDailyQuota),
					Message:   "Daily request quota exceeded. The quota resets at midnight UTC.",
					RequestID: requestID,
				},
			}
			JSON(w, r, http.StatusTooManyRequests, resp)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// setRateLimitHeaders writes the standard X-RateLimit-* headers to the response.
func setRateLimitHeaders(w http.ResponseWriter, limit int, result RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// UsageTracking records per-client usage after the handler chain completes.
// Tracking runs on the request goroutine but must never fail the request;
// the UsageRecorder contract is to swallow and log its own errors.
//
// Requests without an API client actor (public paths, admin) are not tracked.
func (s *Server) UsageTracking(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Usage == nil {
			next.ServeHTTP(w, r)
			return
		}

		actor, ok := types.GetActor(r.Context())
		if !ok || actor.Type != types.ActorTypeAPIClient {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rc := &responseCapture{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rc, r)

		s.Usage.Track(r.Context(), actor.ID, r.URL.Path, r.Method, rc.statusCode, time.Since(start))
	})
}

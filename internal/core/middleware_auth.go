package core

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"golfphysics/internal/types"
)

// apiKeyHeader is the header API clients authenticate with.
const apiKeyHeader = "X-API-Key"

// adminKeyHeader is the header operators authenticate with on admin routes.
const adminKeyHeader = "X-Admin-Key"

// authPublicPaths lists URL paths that are exempt from API key authentication:
// the health check, the self-serve lead capture endpoints, and the Stripe
// webhook (which authenticates via its own signature).
var authPublicPaths = map[string]bool{
	"/health":             true,
	"/v1/contact":         true,
	"/v1/request-api-key": true,
	"/v1/billing/webhook": true,
}

// AuthMiddleware wraps handlers requiring authentication.
//
//  1. Extracts the key from the X-API-Key header.
//  2. Calls Authenticator.ResolveKey to resolve the key to an Actor.
//  3. Injects the Actor into the request context via types.WithActor.
//  4. Returns 401 Unauthorized on failure with distinct error codes:
//     - auth_api_key_missing: No X-API-Key header.
//     - auth_api_key_invalid: Key is malformed or not found.
//     - auth_api_key_revoked: Key exists but has been revoked.
//
// If the Authenticator field on Server is nil (e.g., during tests that don't
// inject one), the middleware passes through without authentication.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If no authenticator is configured, pass through.
		if s.Authenticator == nil {
			next.ServeHTTP(w, r)
			return
		}

		// Skip authentication for public paths.
		if authPublicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			s.writeAuthError(w, r, types.ErrCodeAuthKeyMissing, "X-API-Key header is required")
			return
		}

		actor, err := s.Authenticator.ResolveKey(r.Context(), key)
		if err != nil {
			s.handleAuthError(w, r, err)
			return
		}

		if actor == nil {
			s.writeAuthError(w, r, types.ErrCodeAuthKeyInvalid, "Invalid API key")
			return
		}

		ctx := types.WithActor(r.Context(), *actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handleAuthError inspects the error from Authenticator.ResolveKey and
// writes the appropriate 401 response with the correct error code.
func (s *Server) handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case types.ErrCodeAuthKeyRevoked:
			s.Logger.Warn("authentication failed: key revoked",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			s.writeAuthError(w, r, types.ErrCodeAuthKeyRevoked, "API key has been revoked")
			return
		case types.ErrCodeAuthKeyInvalid:
			s.Logger.Warn("authentication failed: key invalid",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			s.writeAuthError(w, r, types.ErrCodeAuthKeyInvalid, "Invalid API key")
			return
		}
	}

	// Generic error: log it but don't leak internal details.
	s.Logger.Error("authentication failed: unexpected error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	s.writeAuthError(w, r, types.ErrCodeAuthKeyInvalid, "Authentication failed")
}

// writeAuthError writes a 401 Unauthorized JSON response with the given error code.
func (s *Server) writeAuthError(w http.ResponseWriter, r *http.Request, code types.ErrorCode, message string) {
	requestID := types.GetRequestID(r.Context())
	resp := APIErrorResponse{
		Error: ErrorDetail{
			Code:      string(code),
			Message:   message,
			RequestID: requestID,
		},
	}
	JSON(w, r, http.StatusUnauthorized, resp)
}

// RequireAdmin returns middleware that guards the operator endpoints.
// It checks the X-Admin-Key header against the stored admin credential via
// the AdminVerifier (bcrypt comparison against the configured hash).
//
// If no AdminVerifier is configured, admin routes are disabled entirely (404
// would leak their existence, so a 401 is returned instead).
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(adminKeyHeader)
		if key == "" || s.AdminVerifier == nil || !s.AdminVerifier.VerifyAdminKey(key) {
			s.Logger.Warn("admin authentication failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)
			s.writeAuthError(w, r, types.ErrCodeAuthAdminKey, "Invalid admin key")
			return
		}

		ctx := types.WithActor(r.Context(), types.Actor{
			ID:   "admin",
			Type: types.ActorTypeAdmin,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// constantTimeEqual compares two strings in constant time. Used by test
// doubles and the static admin verifier to avoid timing side channels.
func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

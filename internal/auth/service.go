package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"golfphysics/internal/types"
)

// ClientStore defines the data access methods needed by the Authenticator.
// Implemented by db.ClientRepository.
type ClientStore interface {
	GetByKeyHash(ctx context.Context, keyHash string) (*types.APIClient, error)
}

// Service resolves presented API keys to actors. It implements the
// core.Authenticator interface.
type Service struct {
	store  ClientStore
	logger *slog.Logger
}

// NewService creates an authenticator backed by the given client store.
func NewService(store ClientStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// ResolveKey verifies a presented API key and returns the Actor it belongs
// to. Malformed keys are rejected without a database round trip. Revoked or
// deactivated clients get a distinct error code so callers can tell a stale
// credential from a bogus one.
func (s *Service) ResolveKey(ctx context.Context, key string) (*types.Actor, error) {
	if !WellFormed(key) {
		return nil, types.NewAppError(types.ErrCodeAuthKeyInvalid, "malformed API key", nil)
	}

	client, err := s.store.GetByKeyHash(ctx, HashKey(key))
	if err != nil {
		return nil, err
	}

	if client.RevokedAt != nil || !client.Active {
		return nil, types.NewAppError(types.ErrCodeAuthKeyRevoked, "API key has been revoked", nil)
	}

	return &types.Actor{
		ID:    client.ClientID,
		Type:  types.ActorTypeAPIClient,
		Tier:  client.Tier,
		Email: client.Email,
	}, nil
}

// AdminVerifier checks the operator key against a bcrypt hash loaded from
// configuration. It implements the core.AdminVerifier interface.
type AdminVerifier struct {
	hash []byte
}

// NewAdminVerifier creates a verifier from the configured bcrypt hash.
func NewAdminVerifier(bcryptHash string) *AdminVerifier {
	return &AdminVerifier{hash: []byte(bcryptHash)}
}

// VerifyAdminKey reports whether the presented key matches the stored hash.
// bcrypt comparison is constant-time by construction.
func (v *AdminVerifier) VerifyAdminKey(key string) bool {
	if len(v.hash) == 0 || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(key)) == nil
}

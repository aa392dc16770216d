package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"golfphysics/internal/types"
)

// ClientRepository provides data access for the api_clients table.
// Keys are stored as SHA-256 hex digests; the plaintext never reaches this
// layer.
type ClientRepository struct {
	db DBTX
}

// NewClientRepository creates a new ClientRepository backed by the given
// database connection (pool or transaction).
func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

// clientColumns defines the standard set of columns selected for client
// queries. key_hash is included for authentication lookups but MUST NOT be
// exposed in API responses.
const clientColumns = `id, client_id, email, name, company, tier, key_hash,
	active, created_at, revoked_at`

// Create inserts a new API client record. The KeyHash field MUST be the
// SHA-256 hex digest of the plaintext key.
func (r *ClientRepository) Create(ctx context.Context, client *types.APIClient) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO api_clients (id, client_id, email, name, company, tier,
		 key_hash, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))`,
		client.ID,
		client.ClientID,
		client.Email,
		client.Name,
		nilIfEmptyString(client.Company),
		client.Tier,
		client.KeyHash,
		client.Active,
		nilIfZeroTime(client.CreatedAt),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to create API client", err)
	}
	return nil
}

// GetByKeyHash retrieves a client by the SHA-256 hex digest of its API key.
// This is the hot path for request authentication. Returns
// ErrCodeAuthKeyInvalid when no row matches.
func (r *ClientRepository) GetByKeyHash(ctx context.Context, keyHash string) (*types.APIClient, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM api_clients WHERE key_hash = $1`,
		keyHash,
	)

	client, err := scanClientRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeAuthKeyInvalid, "API key not recognized", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to look up API client by key", err)
	}
	return client, nil
}

// GetByClientID retrieves a client by its public client identifier.
// Returns ErrCodeNotFoundClient if no row matches.
func (r *ClientRepository) GetByClientID(ctx context.Context, clientID string) (*types.APIClient, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM api_clients WHERE client_id = $1`,
		clientID,
	)

	client, err := scanClientRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeNotFoundClient, "client not found", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve client", err)
	}
	return client, nil
}

// GetByEmail retrieves the most recent client registered with the given
// email, used to detect duplicate self-serve key requests. Returns (nil, nil)
// when no client exists for the email.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*types.APIClient, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM api_clients
		 WHERE LOWER(email) = LOWER($1)
		 ORDER BY created_at DESC LIMIT 1`,
		email,
	)

	client, err := scanClientRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to look up client by email", err)
	}
	return client, nil
}

// UpdateTier moves a client to a new plan tier, typically after a completed
// Stripe checkout. Returns ErrCodeNotFoundClient if the client does not exist
// or is revoked.
func (r *ClientRepository) UpdateTier(ctx context.Context, clientID string, tier types.PlanTier) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE api_clients SET tier = $1 WHERE client_id = $2 AND revoked_at IS NULL`,
		tier,
		clientID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to update client tier", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundClient, "client not found or revoked", nil)
	}
	return nil
}

// Revoke performs a soft revocation of a client's access by setting
// revoked_at and clearing the active flag. The row is kept for usage history.
func (r *ClientRepository) Revoke(ctx context.Context, clientID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE api_clients SET revoked_at = NOW(), active = FALSE
		 WHERE client_id = $1 AND revoked_at IS NULL`,
		clientID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to revoke client", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundClient, "client not found or already revoked", nil)
	}
	return nil
}

// List retrieves all clients ordered by creation time, newest first.
// Used by the admin endpoints.
func (r *ClientRepository) List(ctx context.Context) ([]*types.APIClient, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+` FROM api_clients ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query clients", err)
	}
	defer rows.Close()

	var results []*types.APIClient
	for rows.Next() {
		client, scanErr := scanClient(rows)
		if scanErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan client row", scanErr)
		}
		results = append(results, client)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "error iterating client rows", err)
	}
	return results, nil
}

// scanClient scans a client from pgx.Rows. Column order must match clientColumns.
func scanClient(rows pgx.Rows) (*types.APIClient, error) {
	var c types.APIClient
	var company *string
	err := rows.Scan(
		&c.ID,
		&c.ClientID,
		&c.Email,
		&c.Name,
		&company,
		&c.Tier,
		&c.KeyHash,
		&c.Active,
		&c.CreatedAt,
		&c.RevokedAt,
	)
	if err != nil {
		return nil, err
	}
	if company != nil {
		c.Company = *company
	}
	return &c, nil
}

// scanClientRow scans a client from a single pgx.Row (for QueryRow).
// Column order must match clientColumns.
func scanClientRow(row pgx.Row) (*types.APIClient, error) {
	var c types.APIClient
	var company *string
	err := row.Scan(
		&c.ID,
		&c.ClientID,
		&c.Email,
		&c.Name,
		&company,
		&c.Tier,
		&c.KeyHash,
		&c.Active,
		&c.CreatedAt,
		&c.RevokedAt,
	)
	if err != nil {
		return nil, err
	}
	if company != nil {
		c.Company = *company
	}
	return &c, nil
}

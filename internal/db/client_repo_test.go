package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"golfphysics/internal/types"
)

// ============================================================
// Create Tests
// ============================================================

func TestClientRepository_Create_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	client := &types.APIClient{
		ID:        "id_1",
		ClientID:  "client_abc123",
		Email:     "pro@clubfitters.com",
		Name:      "Jordan Pro",
		Company:   "Clubfitters Inc",
		Tier:      types.TierDeveloper,
		KeyHash:   "a3f5c9e1d7b2a4f6c8e0d2b4a6f8c0e2d4b6a8f0c2e4d6b8a0f2c4e6d8b0a2f4",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repo.Create(ctx, client)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestClientRepository_Create_DBError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	client := &types.APIClient{
		ID:       "id_1",
		ClientID: "client_abc123",
		Email:    "pro@clubfitters.com",
		Tier:     types.TierDeveloper,
	}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("connection refused"))

	err := repo.Create(ctx, client)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)
}

// ============================================================
// GetByKeyHash Tests
// ============================================================

func clientScanRow(now time.Time) *mockRow {
	return &mockRow{
		scanFn: func(dest ...any) error {
			*dest[0].(*string) = "id_1"
			*dest[1].(*string) = "client_abc123"
			*dest[2].(*string) = "pro@clubfitters.com"
			*dest[3].(*string) = "Jordan Pro"
			company := "Clubfitters Inc"
			*dest[4].(**string) = &company
			*dest[5].(*types.PlanTier) = types.TierStarter
			*dest[6].(*string) = "hashhashhash"
			*dest[7].(*bool) = true
			*dest[8].(*time.Time) = now
			*dest[9].(**time.Time) = nil
			return nil
		},
	}
}

func TestClientRepository_GetByKeyHash_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(clientScanRow(now))

	client, err := repo.GetByKeyHash(ctx, "hashhashhash")
	require.NoError(t, err)
	assert.Equal(t, "client_abc123", client.ClientID)
	assert.Equal(t, types.TierStarter, client.Tier)
	assert.Equal(t, "Clubfitters Inc", client.Company)
	assert.True(t, client.Active)
	assert.Nil(t, client.RevokedAt)
}

func TestClientRepository_GetByKeyHash_NotFound(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	row := &mockRow{scanErr: pgx.ErrNoRows}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	_, err := repo.GetByKeyHash(ctx, "nosuchhash")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeAuthKeyInvalid, appErr.Code)
}

// ============================================================
// GetByClientID / GetByEmail Tests
// ============================================================

func TestClientRepository_GetByClientID_NotFound(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	row := &mockRow{scanErr: pgx.ErrNoRows}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	_, err := repo.GetByClientID(ctx, "client_missing")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeNotFoundClient, appErr.Code)
}

func TestClientRepository_GetByEmail_NoMatch_ReturnsNilNil(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	row := &mockRow{scanErr: pgx.ErrNoRows}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	client, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestClientRepository_GetByEmail_Found(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(clientScanRow(time.Now().UTC()))

	client, err := repo.GetByEmail(ctx, "pro@clubfitters.com")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "pro@clubfitters.com", client.Email)
}

// ============================================================
// UpdateTier / Revoke Tests
// ============================================================

func TestClientRepository_UpdateTier_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	err := repo.UpdateTier(ctx, "client_abc123", types.TierProfessional)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestClientRepository_UpdateTier_NotFound(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := repo.UpdateTier(ctx, "client_missing", types.TierProfessional)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeNotFoundClient, appErr.Code)
}

func TestClientRepository_Revoke_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	err := repo.Revoke(ctx, "client_abc123")
	require.NoError(t, err)
}

func TestClientRepository_Revoke_AlreadyRevoked(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := repo.Revoke(ctx, "client_abc123")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeNotFoundClient, appErr.Code)
}

// ============================================================
// List Tests
// ============================================================

func TestClientRepository_List_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := newMockRows([][]any{
		{"id_1", "client_a", "a@x.com", "A", "Co A", "developer", "hash_a", true, now, nil},
		{"id_2", "client_b", "b@x.com", "B", nil, "professional", "hash_b", true, now, nil},
	})

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	clients, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "client_a", clients[0].ClientID)
	assert.Equal(t, "Co A", clients[0].Company)
	assert.Equal(t, "", clients[1].Company)
	assert.Equal(t, types.TierProfessional, clients[1].Tier)
}

func TestClientRepository_List_QueryError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewClientRepository(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, errors.New("timeout"))

	_, err := repo.List(ctx)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)
}

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"golfphysics/internal/types"
)

func TestUsageRepository_RecordRequest_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	log := &types.RequestLog{
		ID:         "req_1",
		ClientID:   "client_a",
		Endpoint:   "/v1/trajectory",
		Method:     "POST",
		StatusCode: 200,
		LatencyMS:  42,
	}

	// One upsert into usage_daily, one insert into request_logs.
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil).Twice()

	err := repo.RecordRequest(ctx, log)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestUsageRepository_RecordRequest_CountsErrors(t *testing.T) {
	db := new(mockDBTX)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	var upsertArgs []any
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			if upsertArgs == nil {
				upsertArgs = args.Get(2).([]any)
			}
		}).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repo.RecordRequest(ctx, &types.RequestLog{
		ID:         "req_2",
		ClientID:   "client_a",
		Endpoint:   "/v1/trajectory",
		Method:     "POST",
		StatusCode: 502,
		LatencyMS:  10,
	})
	require.NoError(t, err)

	// Third positional arg of the upsert is the error increment.
	require.Len(t, upsertArgs, 4)
	assert.Equal(t, 1, upsertArgs[2])
}

func TestUsageRepository_RecordRequest_UpsertError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("disk full"))

	err := repo.RecordRequest(ctx, &types.RequestLog{ID: "req_3"})
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)
}

func TestUsageRepository_CountToday(t *testing.T) {
	db := new(mockDBTX)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	row := &mockRow{
		scanFn: func(dest ...any) error {
			*dest[0].(*int64) = 842
			return nil
		},
	}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	count, err := repo.CountToday(ctx, "client_a")
	require.NoError(t, err)
	assert.Equal(t, int64(842), count)
}

func TestUsageRepository_GetClientUsage(t *testing.T) {
	db := new(mockDBTX)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	rows := newMockRows([][]any{
		{"client_a", "/v1/trajectory", day, 500, 3, 21000},
		{"client_a", "/v1/conditions", day, 120, 0, 3600},
	})
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	usage, err := repo.GetClientUsage(ctx, "client_a", 7)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, int64(500), usage[0].RequestCount)
	assert.Equal(t, "/v1/conditions", usage[1].Endpoint)
}

func TestUsageRepository_GetAllClientsUsage(t *testing.T) {
	db := new(mockDBTX)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	rows := newMockRows([][]any{
		{"client_a", 5000, 12, 41.5},
		{"client_b", 300, 0, 38.0},
	})
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	summaries, err := repo.GetAllClientsUsage(ctx, 30)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "client_a", summaries[0].ClientID)
	assert.Equal(t, int64(5000), summaries[0].TotalRequests)
	assert.Equal(t, 30, summaries[0].Days)
	assert.InDelta(t, 41.5, summaries[0].AvgLatencyMS, 1e-9)
}

func TestUsageRepository_PruneRequestLogs(t *testing.T) {
	db := new(mockDBTX)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 120"), nil)

	deleted, err := repo.PruneRequestLogs(ctx, time.Now().Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(120), deleted)
}

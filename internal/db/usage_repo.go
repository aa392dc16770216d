package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"golfphysics/internal/types"
)

// UsageRepository provides data access for the usage_daily aggregate and the
// raw request_logs table. The daily aggregate powers billing and dashboards;
// request_logs keep individual requests for debugging and disputes.
type UsageRepository struct {
	db DBTX
}

// NewUsageRepository creates a new UsageRepository backed by the given
// database connection (pool or transaction).
func NewUsageRepository(db DBTX) *UsageRepository {
	return &UsageRepository{db: db}
}

// RecordRequest upserts the per-client, per-endpoint daily counter and
// appends a raw request log row. Both writes are best-effort from the
// caller's perspective; the usage middleware logs errors without failing
// the request.
func (r *UsageRepository) RecordRequest(ctx context.Context, log *types.RequestLog) error {
	isError := 0
	if log.StatusCode >= 400 {
		isError = 1
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO usage_daily (client_id, endpoint, date, request_count, error_count, total_latency_ms)
		 VALUES ($1, $2, CURRENT_DATE, 1, $3, $4)
		 ON CONFLICT (client_id, endpoint, date) DO UPDATE SET
		   request_count = usage_daily.request_count + 1,
		   error_count = usage_daily.error_count + $3,
		   total_latency_ms = usage_daily.total_latency_ms + $4`,
		log.ClientID,
		log.Endpoint,
		isError,
		log.LatencyMS,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to upsert daily usage", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO request_logs (id, client_id, endpoint, method, status_code, latency_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))`,
		log.ID,
		log.ClientID,
		log.Endpoint,
		log.Method,
		log.StatusCode,
		log.LatencyMS,
		nilIfZeroTime(log.CreatedAt),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to insert request log", err)
	}
	return nil
}

// CountToday returns the client's total request count for the current UTC
// date, used to enforce daily plan quotas.
func (r *UsageRepository) CountToday(ctx context.Context, clientID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(request_count), 0) FROM usage_daily
		 WHERE client_id = $1 AND date = CURRENT_DATE`,
		clientID,
	).Scan(&count)
	if err != nil {
		return 0, types.NewAppError(types.ErrCodeInternalDB, "failed to count today's usage", err)
	}
	return count, nil
}

// GetClientUsage returns the per-day usage rows for one client over the last
// given number of days, newest first.
func (r *UsageRepository) GetClientUsage(ctx context.Context, clientID string, days int) ([]*types.UsageDay, error) {
	if days <= 0 {
		days = 30
	}

	rows, err := r.db.Query(ctx,
		`SELECT client_id, endpoint, date, request_count, error_count, total_latency_ms
		 FROM usage_daily
		 WHERE client_id = $1 AND date >= CURRENT_DATE - $2::int
		 ORDER BY date DESC, endpoint`,
		clientID,
		days,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query client usage", err)
	}
	defer rows.Close()

	var results []*types.UsageDay
	for rows.Next() {
		day, scanErr := scanUsageDay(rows)
		if scanErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan usage row", scanErr)
		}
		results = append(results, day)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "error iterating usage rows", err)
	}
	return results, nil
}

// GetAllClientsUsage aggregates usage per client over the last given number
// of days. Used by the admin usage dashboard.
func (r *UsageRepository) GetAllClientsUsage(ctx context.Context, days int) ([]*types.ClientUsageSummary, error) {
	if days <= 0 {
		days = 30
	}

	rows, err := r.db.Query(ctx,
		`SELECT client_id,
		        COALESCE(SUM(request_count), 0),
		        COALESCE(SUM(error_count), 0),
		        CASE WHEN SUM(request_count) > 0
		             THEN SUM(total_latency_ms)::float8 / SUM(request_count)
		             ELSE 0 END
		 FROM usage_daily
		 WHERE date >= CURRENT_DATE - $1::int
		 GROUP BY client_id
		 ORDER BY SUM(request_count) DESC`,
		days,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query aggregate usage", err)
	}
	defer rows.Close()

	var results []*types.ClientUsageSummary
	for rows.Next() {
		summary := &types.ClientUsageSummary{Days: days}
		if scanErr := rows.Scan(
			&summary.ClientID,
			&summary.TotalRequests,
			&summary.TotalErrors,
			&summary.AvgLatencyMS,
		); scanErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan usage summary row", scanErr)
		}
		results = append(results, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "error iterating usage summary rows", err)
	}
	return results, nil
}

// PruneRequestLogs deletes raw request log rows older than the retention
// window. Run periodically from an operational job.
func (r *UsageRepository) PruneRequestLogs(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM request_logs WHERE created_at < $1`,
		olderThan,
	)
	if err != nil {
		return 0, types.NewAppError(types.ErrCodeInternalDB, "failed to prune request logs", err)
	}
	return tag.RowsAffected(), nil
}

func scanUsageDay(rows pgx.Rows) (*types.UsageDay, error) {
	var d types.UsageDay
	err := rows.Scan(
		&d.ClientID,
		&d.Endpoint,
		&d.Date,
		&d.RequestCount,
		&d.ErrorCount,
		&d.TotalLatencyMS,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

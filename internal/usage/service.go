// Package usage records per-client API usage for analytics, billing
// disputes, and daily quota enforcement.
package usage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"golfphysics/internal/types"
)

// Store is the persistence the recorder needs. Implemented by
// db.UsageRepository.
type Store interface {
	RecordRequest(ctx context.Context, log *types.RequestLog) error
	CountToday(ctx context.Context, clientID string) (int64, error)
}

// writeTimeout bounds the recording write so a slow database never holds a
// finished request's goroutine for long.
const writeTimeout = 5 * time.Second

// Recorder implements core.UsageRecorder. Tracking is strictly best effort:
// a write failure is logged and dropped, never surfaced to the caller.
type Recorder struct {
	store  Store
	logger *slog.Logger
	clock  types.Clock
}

// NewRecorder creates a usage recorder.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:  store,
		logger: logger,
		clock:  types.RealClock{},
	}
}

// Track persists one request: the daily aggregate upsert and the raw log
// row. Runs on the request goroutine after the response is written, with a
// fresh context so a client disconnect does not cancel the write.
func (r *Recorder) Track(ctx context.Context, clientID, endpoint, method string, statusCode int, latency time.Duration) {
	reqID := types.GetRequestID(ctx)

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	entry := &types.RequestLog{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		Endpoint:   endpoint,
		Method:     method,
		StatusCode: statusCode,
		LatencyMS:  latency.Milliseconds(),
		CreatedAt:  r.clock.Now(),
	}

	if err := r.store.RecordRequest(writeCtx, entry); err != nil {
		r.logger.ErrorContext(ctx, "failed to record usage",
			"client_id", clientID,
			"endpoint", endpoint,
			"request_id", reqID,
			"error", err,
		)
	}
}

// DailyQuotaExceeded reports whether the client has used up its per-day
// request allowance. A limit of 0 or less means unlimited. Store errors
// fail open, consistent with the per-minute limiter.
func (r *Recorder) DailyQuotaExceeded(ctx context.Context, clientID string, dailyLimit int) (bool, error) {
	if dailyLimit <= 0 {
		return false, nil
	}

	count, err := r.store.CountToday(ctx, clientID)
	if err != nil {
		r.logger.WarnContext(ctx, "daily quota check failed; allowing request",
			"client_id", clientID,
			"error", err,
		)
		return false, err
	}

	return count >= int64(dailyLimit), nil
}

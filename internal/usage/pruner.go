package usage

import (
	"context"
	"log/slog"
	"time"

	"golfphysics/internal/types"
)

// PruneStore is the persistence the pruner needs. Implemented by
// db.UsageRepository.
type PruneStore interface {
	PruneRequestLogs(ctx context.Context, olderThan time.Time) (int64, error)
}

// LogRetention is how long raw request log rows are kept. The daily
// aggregates in usage_daily are permanent; only the per-request rows age
// out.
const LogRetention = 90 * 24 * time.Hour

// pruneInterval is how often the retention sweep runs.
const pruneInterval = 24 * time.Hour

// Pruner deletes raw request logs past the retention window. It runs inside
// the API process on a daily ticker; the delete is idempotent, so multiple
// instances sweeping concurrently is harmless.
type Pruner struct {
	store  PruneStore
	logger *slog.Logger
	clock  types.Clock
}

// NewPruner creates a request log pruner.
func NewPruner(store PruneStore, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		store:  store,
		logger: logger,
		clock:  types.RealClock{},
	}
}

// Run sweeps once at startup and then daily until ctx is cancelled.
func (p *Pruner) Run(ctx context.Context) {
	p.RunOnce(ctx)

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single retention sweep. Failures are logged and left
// for the next sweep.
func (p *Pruner) RunOnce(ctx context.Context) {
	cutoff := p.clock.Now().Add(-LogRetention)

	deleted, err := p.store.PruneRequestLogs(ctx, cutoff)
	if err != nil {
		p.logger.ErrorContext(ctx, "request log prune failed", "error", err)
		return
	}

	if deleted > 0 {
		p.logger.InfoContext(ctx, "pruned request logs",
			"deleted", deleted,
			"cutoff", cutoff.Format(time.RFC3339),
		)
	}
}

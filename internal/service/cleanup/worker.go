package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Store          game.SnapshotStore
	Interval       time.Duration
	TTL            time.Duration
	log            *zap.SugaredLogger
}

func NewWorker(sm *game.SessionManager, store game.SnapshotStore, interval, ttl time.Duration, log *zap.SugaredLogger) *Worker {
	return &Worker{SessionManager: sm, Store: store, Interval: interval, TTL: ttl, log: log}
}

// Start runs a cleanup immediately and then on every tick until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Infow("[CLEANUP] Background worker started", "interval", w.Interval, "ttl", w.TTL)
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce evicts idle sessions and expired snapshots.
func (w *Worker) RunOnce(ctx context.Context) {
	evicted := w.SessionManager.CleanupIdleSessions(w.TTL)

	var deleted int64
	if w.Store != nil {
		n, err := w.Store.DeleteOlderThan(ctx, time.Now().Add(-w.TTL))
		if err != nil {
			w.log.Errorw("[CLEANUP] Error pruning snapshots", "error", err)
		}
		deleted = n
	}

	if evicted > 0 || deleted > 0 {
		w.log.Infow("[CLEANUP] Removed stale state", "sessions", evicted, "snapshots", deleted)
	}
}

package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
)

// Notifier receives out-of-band failure reports. A nil notifier is a no-op.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Scheduler drives the full refresh on a fixed interval. One run executes at
// a time; the ticker does not stack runs behind a slow one.
type Scheduler struct {
	syncer   *Syncer
	cfg      *config.SyncConfig
	notifier Notifier
}

// NewScheduler builds a scheduler over a wired syncer. notifier may be nil.
func NewScheduler(syncer *Syncer, cfg *config.SyncConfig, notifier Notifier) *Scheduler {
	return &Scheduler{syncer: syncer, cfg: cfg, notifier: notifier}
}

// Run blocks until ctx is cancelled. The first refresh happens immediately,
// then one per interval. A failed run is logged and reported, the loop keeps
// going.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	s.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping sync scheduler")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	started := time.Now()

	if err := s.syncer.RunAll(ctx, s.cfg.LeagueIDs, s.cfg.LiveStats); err != nil {
		slog.Error("Sync run failed", "season", s.cfg.Season, "error", err)
		if s.notifier != nil {
			s.notifier.Notify(ctx, fmt.Sprintf("sync run failed for season %s: %v", s.cfg.Season, err))
		}
		return
	}

	slog.Info("Sync run finished", "season", s.cfg.Season, "duration", time.Since(started))
}

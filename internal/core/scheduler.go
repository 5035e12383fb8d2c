package core

import (
	"context"
	"log/slog"
	"time"
)

// StartRefreshScheduler reloads the dataset every interval until ctx is
// cancelled. A failed refresh keeps the previous dataset. The first refresh
// is expected to have happened before the scheduler starts.
func (s *Service) StartRefreshScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		slog.Info("refresh scheduler disabled")
		return
	}
	slog.Info("refresh scheduler started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.runRefreshJob(ctx)
		}
	}
}

func (s *Service) runRefreshJob(ctx context.Context) {
	start := time.Now()
	if err := s.Refresh(ctx); err != nil {
		slog.Error("scheduled refresh failed", "error", err)
		return
	}
	ds := s.Dataset()
	slog.Info("scheduled refresh completed",
		"version", ds.Version,
		"users", len(ds.Users),
		"merchants", len(ds.Merchants),
		"accounts", len(ds.Accounts),
		"sessions", s.sessions.count(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

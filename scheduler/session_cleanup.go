package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SessionPurger removes expired sessions.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// StartSessionCleanup runs PurgeExpired on spec (a cron expression or an
// "@every" descriptor). Stop the returned cron on shutdown.
func StartSessionCleanup(sessions SessionPurger, spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { PurgeOnce(context.Background(), sessions) }); err != nil {
		return nil, fmt.Errorf("invalid session cleanup schedule %q: %w", spec, err)
	}
	c.Start()
	slog.Info("session cleanup scheduled", "schedule", spec)
	return c, nil
}

// PurgeOnce runs a single cleanup pass and logs the outcome.
func PurgeOnce(ctx context.Context, sessions SessionPurger) int64 {
	purged, err := sessions.PurgeExpired(ctx)
	if err != nil {
		slog.Error("session cleanup failed", "error", err)
		return 0
	}
	if purged > 0 {
		slog.Info("expired sessions purged", "count", purged)
	}
	return purged
}

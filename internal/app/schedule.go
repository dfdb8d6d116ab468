package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// nextDailyRun returns the first instant at hour:00 UTC strictly after now.
func nextDailyRun(now time.Time, hour int) time.Time {
	now = now.UTC()
	run := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

// runEvery calls fn immediately and then on every tick until ctx is done.
func runEvery(ctx context.Context, log *zap.Logger, name string, interval time.Duration, fn func(ctx context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("periodic job started", zap.String("job", name), zap.Duration("interval", interval))
	for {
		if err := fn(ctx); err != nil {
			log.Error("periodic job failed", zap.String("job", name), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			log.Info("periodic job stopped", zap.String("job", name))
			return
		case <-ticker.C:
		}
	}
}

// runDaily calls fn once a day at hour:00 UTC until ctx is done.
func runDaily(ctx context.Context, log *zap.Logger, name string, hour int, fn func(ctx context.Context, day time.Time) error) {
	for {
		next := nextDailyRun(time.Now(), hour)
		log.Info("daily job scheduled", zap.String("job", name), zap.Time("next_run", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("daily job stopped", zap.String("job", name))
			return
		case <-timer.C:
		}

		if err := fn(ctx, next); err != nil {
			log.Error("daily job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

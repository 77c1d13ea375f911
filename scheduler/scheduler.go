// Package scheduler runs the periodic housekeeping jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TokenPurger deletes blacklist entries whose token has already expired.
type TokenPurger interface {
	PurgeRevokedTokens(ctx context.Context, now time.Time) (int64, error)
}

// Start registers the token purge on schedule and starts the cron runner.
// The caller stops it on shutdown.
func Start(schedule string, purger TokenPurger, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, PurgeJob(purger, log)); err != nil {
		return nil, err
	}
	c.Start()
	log.Info("scheduler started", zap.String("token_purge", schedule))
	return c, nil
}

// PurgeJob is the cron body for the revoked token purge.
func PurgeJob(purger TokenPurger, log *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := purger.PurgeRevokedTokens(ctx, time.Now())
		if err != nil {
			log.Error("revoked token purge failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("revoked tokens purged", zap.Int64("count", n))
		}
	}
}

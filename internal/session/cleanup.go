package session

import (
	"context"
	"time"

	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartCleanup sweeps expired sessions every interval until ctx is done.
func StartCleanup(ctx context.Context, store ExpiredDeleter, log *logger.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DefaultSessionCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := store.DeleteExpired(ctx)
			if err != nil {
				log.Errorf("session cleanup failed: %v", err)
				continue
			}
			if deleted > 0 {
				metrics.SessionsCleanupDeleted.Add(float64(deleted))
				log.Infof("session cleanup: deleted %d expired sessions", deleted)
			}
		}
	}
}

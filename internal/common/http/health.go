package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
)

const healthCheckTimeout = 2 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// HealthHandler answers 200 {"status":"ok"} when every check passes and 503
// naming the failed dependency otherwise.
func HealthHandler(log *logger.Logger, checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.WithFields(r.Context(), logger.Fields{
					"dependency": name,
					"action":     "health_check_failed",
				}).Warnf("health check failed: %v", err)
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "failed": name})
				return
			}
		}

		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

package http

import (
	"net/http"
	"runtime/debug"

	"github.com/AlibekovAA/ricebook/backend/internal/common/httpmetrics"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
)

// RecoveryMiddleware turns a handler panic into a 500 envelope. Aborted
// handlers are re-panicked so net/http can drop the connection.
func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				path := httpmetrics.RoutePath(r)
				metrics.PanicsRecovered.WithLabelValues(path).Inc()
				log.WithFields(r.Context(), logger.Fields{
					"method": r.Method,
					"path":   path,
					"action": "panic_recovered",
				}).Criticalf("panic recovered: %v\n%s", rec, debug.Stack())
				WriteErrorEnvelope(w, http.StatusInternalServerError, CodeInternal, "internal server error", nil, TraceIDFromContext(r.Context()))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

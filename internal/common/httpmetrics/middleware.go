package httpmetrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
)

type Collector struct {
	service string
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func New(service string) *Collector {
	return &Collector{
		service: service,
	}
}

func (c *Collector) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := r.Method

		inFlight := metrics.HTTPRequestsInFlight.WithLabelValues(c.service)
		inFlight.Inc()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		inFlight.Dec()

		// chi fills the route pattern while routing, so it is only known here.
		path := RoutePath(r)
		statusClass := fmt.Sprintf("%dxx", rec.status/100)

		metrics.HTTPRequestsTotal.WithLabelValues(c.service, method, path).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(c.service, method, path, statusClass).
			Observe(time.Since(start).Seconds())
	})
}

// RoutePath returns the matched chi pattern, falling back to the normalized
// URL path for unrouted requests.
func RoutePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return NormalizePath(r.URL.Path)
}

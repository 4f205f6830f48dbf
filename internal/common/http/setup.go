package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
	"github.com/AlibekovAA/ricebook/backend/internal/common/httpmetrics"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
)

// NewRouter returns a chi router with request metrics installed. The metrics
// middleware must sit inside the router to see the matched route pattern.
func NewRouter(appName string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(httpmetrics.New(appName).Wrap)
	r.NotFound(NotFoundHandler)
	r.MethodNotAllowed(MethodNotAllowedHandler)
	return r
}

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	csp := ContentSecurityPolicyMiddleware("")

	return securityHeaders(csp(traceID(recovery(maxRequestSize(handler)))))
}

package http

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
)

const traceIDHeader = "X-Trace-ID"

// Incoming ids end up in log lines, so only short token-like values are kept.
var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

func TraceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !traceIDPattern.MatchString(traceID) {
			traceID = uuid.NewString()
		}

		w.Header().Set(traceIDHeader, traceID)

		ctx := context.WithValue(r.Context(), constants.TraceIDKey, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

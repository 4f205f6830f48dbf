// Package sessionauth is the single gate in front of every protected route.
package sessionauth

import (
	"context"
	"net/http"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/ricebook/backend/internal/common/http"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
)

type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (string, error)
}

type contextKey int

const (
	usernameKey contextKey = iota
	sessionIDKey
)

// Middleware resolves the session cookie to a username and stores both in
// the request context. Requests without a live session get 401.
func Middleware(auth Authenticator, cookieName string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, log)
				return
			}

			username, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				commonhttp.HandleError(w, r, err, log)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			ctx = context.WithValue(ctx, sessionIDKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// WithUsername is used by handlers' tests to skip the gate.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonhttp "github.com/AlibekovAA/ricebook/backend/internal/common/http"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/sessionauth"
	followrepo "github.com/AlibekovAA/ricebook/backend/internal/following/repository"
	"github.com/AlibekovAA/ricebook/backend/internal/following/service"
	userdomain "github.com/AlibekovAA/ricebook/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

func headerGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get("X-User")
		if username == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(sessionauth.WithUsername(r.Context(), username)))
	})
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	users := userrepo.NewMemoryRepository()
	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, users.Create(context.Background(), userdomain.User{
			ID:       userdomain.ID("id-" + name),
			Username: name,
			Email:    name + "@example.com",
			Dob:      time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}))
	}

	log, _ := logger.New("", "test", "info")
	svc := service.NewFollowingService(users, followrepo.NewMemoryRepository(), log)

	router := commonhttp.NewRouter("test")
	NewHandler(svc, log).Mount(router, headerGate)
	return router
}

func do(t *testing.T, h http.Handler, method, path, user string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-User", user)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFollowingHTTP_FollowListUnfollow(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPut, "/following/bob", "alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"You are now following bob","following":["bob"]}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/following/carol", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"You are now following carol","following":["bob","carol"]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/following", "alice")
	assert.JSONEq(t, `{"username":"alice","following":["bob","carol"]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/following/alice", "bob")
	assert.JSONEq(t, `{"username":"alice","following":["bob","carol"]}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/following/bob", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"You are no longer following bob."}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/following", "alice")
	assert.JSONEq(t, `{"username":"alice","following":["carol"]}`, rec.Body.String())
}

func TestFollowingHTTP_EmptyListIsArray(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/following", "bob")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"bob","following":[]}`, rec.Body.String())
}

func TestFollowingHTTP_Errors(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPut, "/following/alice", "alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SELF_FOLLOW")

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/following/ghost", "alice").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/following/ghost", "alice").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/following/ghost", "alice").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/following", "").Code)
}

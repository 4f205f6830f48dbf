package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWriter(io.Discard, "test", "error")
}

func TestHealthHandler(t *testing.T) {
	ok := HealthHandler(testLogger(), map[string]Check{
		"postgres": func(ctx context.Context) error { return nil },
	})
	rec := httptest.NewRecorder()
	ok(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := HealthHandler(testLogger(), map[string]Check{
		"postgres": func(ctx context.Context) error { return errors.New("dial tcp: connection refused") },
	})
	rec = httptest.NewRecorder()
	down(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","failed":"postgres"}`, rec.Body.String())
}

func TestTraceIDMiddleware(t *testing.T) {
	var seen string
	h := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "abc12345-upstream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc12345-upstream", seen)
	assert.Equal(t, seen, rec.Header().Get(traceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "bad id\nwith newline")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "bad id\nwith newline", seen)
	assert.Len(t, seen, 36, "replaced with a generated uuid")
}

func TestBuildBaseHandler_HeadersAndRecovery(t *testing.T) {
	h := BuildBaseHandler(testLogger(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"`+CodeInternal+`"`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'none'")
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestHandleError_Envelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/profile/email/nobody", nil)
	req = req.WithContext(context.WithValue(req.Context(), constants.TraceIDKey, "trace-1234"))

	rec := httptest.NewRecorder()
	HandleError(rec, req, commonerrors.ErrUserNotFound, testLogger())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"USER_NOT_FOUND","message":"user not found","trace_id":"trace-1234"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	HandleError(rec, req, errors.New("driver: bad connection"), testLogger())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "driver")
}

func TestDecodeBody(t *testing.T) {
	var v map[string]any

	req := httptest.NewRequest(http.MethodPost, "/article", strings.NewReader(`{"title":`))
	err := DecodeBody(req, &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, commonerrors.ErrInvalidJSON)

	req = httptest.NewRequest(http.MethodPost, "/article", strings.NewReader(``))
	err = DecodeBody(req, &v)
	assert.ErrorIs(t, err, commonerrors.ErrInvalidJSON)

	req = httptest.NewRequest(http.MethodPost, "/article", strings.NewReader(`{"title":"t"}`))
	require.NoError(t, DecodeBody(req, &v))
	assert.Equal(t, "t", v["title"])
}

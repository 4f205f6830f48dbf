package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "ricebook", "warn")

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARNING] [ricebook]")
	assert.False(t, log.ShouldLog(DEBUG))
	assert.True(t, log.ShouldLog(ERROR))
}

func TestLogger_WithFieldsAddsTraceIDAndSortsKeys(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "ricebook", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "trace-1")
	log.WithFields(ctx, Fields{"username": "alice", "action": "login_success"}).Info("login success")

	out := buf.String()
	assert.Contains(t, out, "[trace_id=trace-1 action=login_success username=alice]")
	assert.Contains(t, out, "login success")
}

func TestNew_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	log, err := New(dir, "ricebook", "info")
	require.NoError(t, err)

	log.Info("to file")

	raw, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "to file")
}

// Package dbtest opens a migrated Postgres pool for repository tests.
// Tests are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/ricebook/backend/internal/common/db"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
)

const envURL = "TEST_DATABASE_URL"

func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(envURL)
	if url == "" {
		t.Skipf("%s not set", envURL)
	}

	ctx := context.Background()
	log := logger.NewWriter(io.Discard, "test", "error")

	if err := db.Migrate(ctx, log, url); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	Truncate(t, pool)
	return pool
}

func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE sessions, follows, articles, users`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

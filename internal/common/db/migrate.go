package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/migrations"
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
)

// gooseUp is replaced in tests.
var gooseUp = func(ctx context.Context, conn *sql.DB) (int64, error) {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return 0, err
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, conn)
}

// Migrate applies the embedded schema migrations over a short-lived
// database/sql connection; the pgx pool is opened separately.
func Migrate(ctx context.Context, log *logger.Logger, databaseURL string) error {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer conn.Close()

	version, err := gooseUp(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	metrics.DBMigrationsApplied.Set(float64(version))
	log.Infof("database schema at version %d", version)
	return nil
}
